//go:build ppc64 || s390x || mips || mips64 || sparc64

package endian

// This module is not supported on big-endian hosts (spec Non-goals).
// The build tag selects this file on those architectures, and the
// negative-size array below turns that into a compile-time failure
// instead of a silent wrong-endianness build.
var _ = [-1]int{}

const HostLittleEndian = false
