package record

import "fmt"

// Control-message service ids the spec names explicitly.
const (
	serviceGetSoftwareVersion = 19
	serviceConnectionInfo     = 0xf02
	serviceTimezone           = 0xf03
	serviceMarker             = 0xf04
)

// subtype values for a control message (mtin field of msin).
const (
	controlRequest  = 1
	controlResponse = 2
	controlTime     = 3
)

var serviceNames = map[uint32]string{
	0:  "",
	1:  "set_log_level",
	2:  "set_trace_status",
	3:  "get_log_info",
	4:  "get_default_log_level",
	5:  "store_config",
	6:  "reset_to_factory_default",
	7:  "set_com_interface_status",
	8:  "set_com_interface_max_bandwidth",
	9:  "set_verbose_mode",
	10: "set_message_filtering",
	11: "set_timing_packets",
	12: "get_local_time",
	13: "use_ecu_id",
	14: "use_session_id",
	15: "use_timestamp",
	16: "use_extended_header",
	17: "set_default_log_level",
	18: "set_default_trace_status",
	19: "get_software_version",
	20: "message_buffer_overflow",

	serviceConnectionInfo: "connection_info",
	serviceTimezone:       "timezone",
	serviceMarker:         "marker",
}

func serviceName(id uint32) string {
	if name, ok := serviceNames[id]; ok {
		return name
	}
	return fmt.Sprintf("service(%d)", id)
}

var returnCodeNames = map[uint8]string{
	0: "ok",
	1: "not_supported",
	2: "error",
	3: "3",
	4: "4",
	5: "5",
	6: "6",
	7: "7",
	8: "no_matching_context_id",
}

func returnCodeName(code uint8) (string, error) {
	name, ok := returnCodeNames[code]
	if !ok {
		return "", fail(fmt.Sprintf("invalid control return code %d", code))
	}
	return name, nil
}
