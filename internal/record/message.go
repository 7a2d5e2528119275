package record

import (
	"fmt"

	"example.com/dltrace/internal/dltarg"
	"example.com/dltrace/internal/endian"
)

// formatMessage dispatches to the control, verbose, or non-verbose
// formatting branch per spec §4.4.1.
func formatMessage(rec Record, payload []byte) (string, error) {
	if rec.HasExtendedHeader && rec.MsgType == TypeControl {
		return formatControl(rec, payload)
	}
	if rec.HasExtendedHeader && rec.Verbose {
		if rec.Noar == 0 {
			return "", nil
		}
		msg, err := dltarg.Format(payload, int(rec.Noar), rec.BigEndian)
		if err != nil {
			return "", fail(err.Error())
		}
		return msg, nil
	}
	return formatNonVerbose(payload, rec.BigEndian)
}

func formatNonVerbose(payload []byte, big bool) (string, error) {
	id, err := endian.Uint32(payload, big)
	if err != nil {
		return "", fail("truncated non-verbose message id")
	}
	return fmt.Sprintf("[%d]", id), nil
}

func formatControl(rec Record, payload []byte) (string, error) {
	if rec.Verbose {
		return "", fail("verbose control messages are not supported")
	}
	cur := &endian.Cursor{Buf: payload}
	serviceID, err := cur.ExtractUint32(rec.BigEndian)
	if err != nil {
		return "", fail("truncated control service id")
	}

	if rec.MsgSubtype != controlResponse {
		return fmt.Sprintf("[%s]", serviceName(serviceID)), nil
	}

	retB, err := cur.ExtractBytes(1)
	if err != nil {
		return "", fail("truncated control return code")
	}
	retCode := retB[0]

	if serviceID == serviceMarker {
		return "MARKER", nil
	}

	retName, err := returnCodeName(retCode)
	if err != nil {
		return "", err
	}
	base := fmt.Sprintf("[%s %s] ", serviceName(serviceID), retName)

	switch serviceID {
	case serviceGetSoftwareVersion:
		length, err := cur.ExtractUint32(false) // little-endian, no swap
		if err != nil {
			return "", fail("truncated software version length")
		}
		versionBytes, err := cur.ExtractBytes(int(length))
		if err != nil {
			return "", fail("truncated software version content")
		}
		return base + string(versionBytes), nil

	case serviceConnectionInfo:
		statusB, err := cur.ExtractBytes(1)
		if err != nil {
			return "", fail("truncated connection info status")
		}
		status := "disconnected"
		if statusB[0] == 2 {
			status = "connected"
		}
		ecuB, err := cur.ExtractBytes(4)
		if err != nil {
			return "", fail("truncated connection info ecu")
		}
		return fmt.Sprintf("[%s %s] %s %s", serviceName(serviceID), retName, status, trimID4(ecuB)), nil

	case serviceTimezone:
		secsB, err := cur.ExtractUint32(false) // little-endian, no swap
		if err != nil {
			return "", fail("truncated timezone seconds")
		}
		dstB, err := cur.ExtractBytes(1)
		if err != nil {
			return "", fail("truncated timezone dst flag")
		}
		msg := fmt.Sprintf("%d", int32(secsB))
		if dstB[0] != 0 {
			msg += " DST"
		}
		return msg, nil

	default:
		return base, nil
	}
}
