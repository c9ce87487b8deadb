// Package ipplugin registers the ip feature function: Ip(string) parses
// a string into an IP/CIDR value, grounded on bel/src/functions.rs's
// #[cfg(feature = "ip")] module. The crate parses into an ipnetwork::
// IpNetwork; none of the example repos vendor an IP-address library, so
// this uses the standard library's net/netip, which covers the same
// address-plus-prefix-length shape (netip.Prefix) without adding a
// dependency nothing else in the corpus reaches for.
package ipplugin

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/funvibe/bel/internal/evaluator"
	"github.com/funvibe/bel/internal/values"
)

// Register adds Ip(), ip_contains(), and ip_family() to ctx. Ip is the
// capitalized conversion constructor, per functions.rs's naming; the two
// instance methods stay lowercase like the rest of the method-style
// builtins.
func Register(ctx *evaluator.Context) {
	ctx.RegisterFunction(&evaluator.Function{Name: "Ip", Impl: builtinIP})
	ctx.RegisterFunction(&evaluator.Function{Name: "ip_contains", Impl: builtinIPContains})
	ctx.RegisterFunction(&evaluator.Function{Name: "ip_family", Impl: builtinIPFamily})
}

func builtinIP(fc *evaluator.FunctionContext) (values.Value, error) {
	s, err := fc.StringArg(0)
	if err != nil {
		return values.Value{}, err
	}
	prefix, parseErr := parseIPOrCIDR(s)
	if parseErr != nil {
		return values.Value{}, fmt.Errorf("error converting %q to Ip: %w", s, parseErr)
	}
	return values.IP(prefix), nil
}

// parseIPOrCIDR accepts both bare addresses ("10.0.0.1", widened to a
// single-address prefix) and CIDR notation ("10.0.0.0/24"), matching
// ipnetwork::IpNetwork's own FromStr, which accepts either form.
func parseIPOrCIDR(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		return netip.ParsePrefix(s)
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func builtinIPContains(fc *evaluator.FunctionContext) (values.Value, error) {
	this, err := fc.This()
	if err != nil {
		return values.Value{}, err
	}
	if this.Kind != values.KindIP {
		return values.Value{}, fmt.Errorf("ip_contains() is not defined for kind %s", this.Kind)
	}
	other, err := fc.StringArg(0)
	if err != nil {
		return values.Value{}, err
	}
	addr, parseErr := netip.ParseAddr(other)
	if parseErr != nil {
		return values.Value{}, fmt.Errorf("error converting %q to Ip: %w", other, parseErr)
	}
	return values.Bool(this.IP.Contains(addr)), nil
}

func builtinIPFamily(fc *evaluator.FunctionContext) (values.Value, error) {
	this, err := fc.This()
	if err != nil {
		return values.Value{}, err
	}
	if this.Kind != values.KindIP {
		return values.Value{}, fmt.Errorf("ip_family() is not defined for kind %s", this.Kind)
	}
	if this.IP.Addr().Is4() {
		return values.Int(4), nil
	}
	return values.Int(6), nil
}
