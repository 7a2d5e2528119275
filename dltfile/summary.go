package dltfile

import "example.com/dltrace/internal/record"

// TypeSubtype keys the per-(type,subtype) histogram in a Summary.
type TypeSubtype struct {
	Type    uint8
	Subtype uint8
}

// Summary is a set of counts derived on demand from a File's record
// vector, feeding the report generator. It is never stored on File itself
// so it can't drift out of sync with the records it was computed from.
type Summary struct {
	TotalRecords     int
	CorruptionMarkers int
	ByTypeSubtype    map[TypeSubtype]int
	Ecus             map[string]struct{}
	Apids            map[string]struct{}
	Ctids            map[string]struct{}
}

func summarize(recs []record.Record) Summary {
	s := Summary{
		ByTypeSubtype: make(map[TypeSubtype]int),
		Ecus:          make(map[string]struct{}),
		Apids:         make(map[string]struct{}),
		Ctids:         make(map[string]struct{}),
	}
	for _, r := range recs {
		s.TotalRecords++
		if r.Corrupted {
			s.CorruptionMarkers++
			continue
		}
		if r.HasExtendedHeader {
			s.ByTypeSubtype[TypeSubtype{Type: r.MsgType, Subtype: r.MsgSubtype}]++
			if r.Apid != "" {
				s.Apids[r.Apid] = struct{}{}
			}
			if r.Ctid != "" {
				s.Ctids[r.Ctid] = struct{}{}
			}
		}
		if ecu := r.Ecu(); ecu != "" {
			s.Ecus[ecu] = struct{}{}
		}
	}
	return s
}
