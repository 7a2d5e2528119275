package record

import "encoding/binary"

// id4 right-pads s with zero bytes to 4 bytes, the wire encoding ID4
// fields use before trimming.
func id4(s string) []byte {
	b := make([]byte, 4)
	copy(b, s)
	return b
}

// recordBuilder assembles one DLT wire record byte-by-byte, mirroring the
// field order decode.go reads in: storage header, standard header,
// optional extras, optional extended header, payload.
type recordBuilder struct {
	storageEcu     string
	secs, micros   uint32
	htyp, mcnt     byte
	extraEcu       string
	sessionID      uint32
	timestampExtra uint32
	msin, noar     byte
	apid, ctid     string
	payload        []byte
}

const (
	tHtypUEH  = 0x01
	tHtypMSBF = 0x02
	tHtypWEID = 0x04
	tHtypWSID = 0x08
	tHtypWTMS = 0x10
)

func (b recordBuilder) build() []byte {
	var out []byte
	out = append(out, 'D', 'L', 'T', 0x01)
	secs := make([]byte, 4)
	binary.LittleEndian.PutUint32(secs, b.secs)
	out = append(out, secs...)
	micros := make([]byte, 4)
	binary.LittleEndian.PutUint32(micros, b.micros)
	out = append(out, micros...)
	out = append(out, id4(b.storageEcu)...)

	consumed := 4
	var extras []byte
	if b.htyp&tHtypWEID != 0 {
		extras = append(extras, id4(b.extraEcu)...)
		consumed += 4
	}
	if b.htyp&tHtypWSID != 0 {
		sid := make([]byte, 4)
		binary.BigEndian.PutUint32(sid, b.sessionID)
		extras = append(extras, sid...)
		consumed += 4
	}
	if b.htyp&tHtypWTMS != 0 {
		tmsp := make([]byte, 4)
		binary.BigEndian.PutUint32(tmsp, b.timestampExtra)
		extras = append(extras, tmsp...)
		consumed += 4
	}
	var ext []byte
	if b.htyp&tHtypUEH != 0 {
		ext = append(ext, b.msin, b.noar)
		ext = append(ext, id4(b.apid)...)
		ext = append(ext, id4(b.ctid)...)
		consumed += 10
	}

	wireLen := uint16(consumed + len(b.payload))
	std := make([]byte, 4)
	std[0] = b.htyp
	std[1] = b.mcnt
	binary.BigEndian.PutUint16(std[2:4], wireLen)
	out = append(out, std...)
	out = append(out, extras...)
	out = append(out, ext...)
	out = append(out, b.payload...)
	return out
}

func buildMsin(verbose bool, msgType, subtype uint8) byte {
	var v byte
	if verbose {
		v = 0x01
	}
	v |= (msgType & 0x07) << 1
	v |= (subtype & 0x0f) << 4
	return v
}
