package probe

import (
	"fmt"
	"net/netip"
)

// Classful default masks
const (
	MaskClassA = "255.0.0.0"
	MaskClassB = "255.255.0.0"
	MaskClassC = "255.255.255.0"
)

// Classify derives the classful default subnet mask from the first octet of a
// dotted-quad IPv4 address. Multicast and reserved ranges (224-255) have no mask
// and report ok == false.
func Classify(ipv4 string) (mask string, ok bool, err error) {
	addr, perr := netip.ParseAddr(ipv4)
	if perr != nil || !addr.Is4() {
		return "", false, NewError(KindMalformedInput, FactSubnetMask,
			fmt.Errorf("%q is not an IPv4 address", ipv4))
	}

	switch first := addr.As4()[0]; {
	case first < 128:
		return MaskClassA, true, nil
	case first < 192:
		return MaskClassB, true, nil
	case first < 224:
		return MaskClassC, true, nil
	default:
		return "", false, nil
	}
}
