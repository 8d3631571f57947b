package inventory

import (
	"fmt"
	"net/netip"
)

// SubnetCapacity returns the number of usable host addresses in an IPv4 CIDR.
// /31 point-to-point links count both addresses, /32 counts one.
func SubnetCapacity(cidr string) (int, error) {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, cidr)
	}
	if !prefix.Addr().Is4() {
		return 0, fmt.Errorf("%w: %q is not an IPv4 network", ErrInvalidAddress, cidr)
	}

	bits := prefix.Bits()
	switch {
	case bits == 32:
		return 1, nil
	case bits == 31:
		return 2, nil
	default:
		return 1<<(32-bits) - 2, nil
	}
}

// Contains reports whether addr falls inside cidr. Malformed input never matches.
func Contains(cidr, addr string) bool {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return false
	}
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}
	return prefix.Masked().Contains(ip)
}

// Usage derives the subnet counters from the addresses that belong to it.
// TotalIPs is the capacity of the block; AvailableIPs counts every address
// not assigned, reserved or deprecated.
func (s *Subnet) Usage(ips []*IPAddress) (SubnetUsage, error) {
	capacity, err := SubnetCapacity(s.CIDR)
	if err != nil {
		return SubnetUsage{}, err
	}

	usage := SubnetUsage{TotalIPs: capacity}
	for _, ip := range ips {
		if !s.Owns(ip) {
			continue
		}
		switch ip.Status {
		case IPAssigned:
			usage.UsedIPs++
		case IPReserved:
			usage.ReservedIPs++
		case IPDeprecated:
			usage.DeprecatedIPs++
		}
	}

	usage.AvailableIPs = capacity - usage.UsedIPs - usage.ReservedIPs - usage.DeprecatedIPs
	if usage.AvailableIPs < 0 {
		usage.AvailableIPs = 0
	}
	return usage, nil
}

// Owns reports whether ip is recorded against this subnet, either by its
// CIDR label or by address containment.
func (s *Subnet) Owns(ip *IPAddress) bool {
	if ip.Subnet != "" {
		return ip.Subnet == s.CIDR
	}
	return Contains(s.CIDR, ip.Address)
}
