//go:build !(ppc64 || s390x || mips || mips64 || sparc64)

package endian

// HostLittleEndian is true on every architecture this module supports.
// A handful of big-endian-only GOARCH values are excluded by the build
// tag above and resolve to host_big.go instead, which fails the build.
const HostLittleEndian = true
