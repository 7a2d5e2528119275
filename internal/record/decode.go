package record

import (
	"example.com/dltrace/internal/bytesource"
	"example.com/dltrace/internal/endian"
)

// ParseFailure is a framing mismatch: bad magic, inconsistent length, or a
// payload-formatting failure. It is recoverable by sliding the read cursor
// one byte forward and retrying, unlike a Truncated or EOF error.
type ParseFailure struct {
	Msg string
}

func (e *ParseFailure) Error() string { return e.Msg }

func fail(msg string) error { return &ParseFailure{Msg: msg} }

var storageMagic = [4]byte{'D', 'L', 'T', 0x01}

// DecodeOne attempts to decode exactly one record starting at the view's
// current position. On success the view's cursor sits just past the
// record's payload. On failure the view's cursor position is unspecified;
// callers that want to retry from a particular offset must SetPos
// explicitly (this is the resync loop's job, not this function's).
func DecodeOne(v *bytesource.View) (Record, error) {
	start := v.GetPos()

	magic, err := v.Read(4)
	if err != nil {
		return Record{}, err
	}
	if magic[0] != storageMagic[0] || magic[1] != storageMagic[1] || magic[2] != storageMagic[2] || magic[3] != storageMagic[3] {
		return Record{}, fail("bad storage header magic")
	}

	secsB, err := v.Read(4)
	if err != nil {
		return Record{}, err
	}
	secs, _ := endian.Uint32(secsB, false)

	microsB, err := v.Read(4)
	if err != nil {
		return Record{}, err
	}
	micros, _ := endian.Uint32(microsB, false)

	ecuB, err := v.Read(4)
	if err != nil {
		return Record{}, err
	}
	storageEcu := trimID4(ecuB)

	stdB, err := v.Read(4)
	if err != nil {
		return Record{}, err
	}
	htyp := stdB[0]
	mcnt := stdB[1]
	wireLen, _ := endian.Uint16(stdB[2:4], true) // big-endian on the wire

	consumed := 4 // htyp + mcnt + len

	rec := Record{
		StorageEcu:     storageEcu,
		StorageSeconds: secs,
		StorageMicros:  micros,
		Htyp:           htyp,
		Counter:        mcnt,
		WireLen:        wireLen,
		StartOffset:    start,
		BigEndian:      htyp&htypMSBF != 0,
	}

	if htyp&htypWEID != 0 {
		b, err := v.Read(4)
		if err != nil {
			return Record{}, err
		}
		rec.HasExtraEcu = true
		rec.ExtraEcu = trimID4(b)
		consumed += 4
	}
	if htyp&htypWSID != 0 {
		b, err := v.Read(4)
		if err != nil {
			return Record{}, err
		}
		sid, _ := endian.Uint32(b, true)
		rec.HasSessionID = true
		rec.SessionID = sid
		consumed += 4
	}
	if htyp&htypWTMS != 0 {
		b, err := v.Read(4)
		if err != nil {
			return Record{}, err
		}
		ts, _ := endian.Uint32(b, true)
		rec.HasTimestampExtra = true
		rec.TimestampExtra = ts
		consumed += 4
	}

	if htyp&htypUEH != 0 {
		b, err := v.Read(10)
		if err != nil {
			return Record{}, err
		}
		msin := b[0]
		noar := b[1]
		rec.HasExtendedHeader = true
		rec.Msin = msin
		rec.Noar = noar
		rec.Apid = trimID4(b[2:6])
		rec.Ctid = trimID4(b[6:10])
		rec.Verbose = msin&msinVERB != 0
		rec.MsgType = (msin & msinMSTPMask) >> msinMSTPShift
		rec.MsgSubtype = (msin & msinMTINMask) >> msinMTINShift
		consumed += 10
	}

	remaining := int(wireLen) - consumed
	if remaining < 0 {
		return Record{}, fail("declared length shorter than headers consumed")
	}
	payload, err := v.Read(int64(remaining))
	if err != nil {
		return Record{}, err
	}

	msg, err := formatMessage(rec, payload)
	if err != nil {
		return Record{}, err
	}
	rec.Message = msg
	rec.BytesConsumed = v.GetPos() - start
	return rec, nil
}
