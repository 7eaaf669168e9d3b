package model

import (
	"strings"

	"github.com/hashicorp/go-version"
)

// CompareVersions orders two VIB version strings of the form upstream-release,
// e.g. 4.19.16.8-10vmw.703.0.20.19193900. The upstream part is compared as a
// dotted version; the release part component by component, each by its leading
// integer and then by the remaining text.
func CompareVersions(a, b string) int {
	upA, relA, _ := strings.Cut(a, "-")
	upB, relB, _ := strings.Cut(b, "-")
	if c := compareUpstream(upA, upB); c != 0 {
		return c
	}
	return compareRelease(relA, relB)
}

func compareUpstream(a, b string) int {
	va, errA := version.NewVersion(a)
	vb, errB := version.NewVersion(b)
	if errA != nil || errB != nil {
		return compareRelease(a, b)
	}
	return va.Compare(vb)
}

// compareRelease compares dot-separated components. A missing component sorts first.
func compareRelease(a, b string) int {
	if a == b {
		return 0
	}
	pa := strings.Split(a, ".")
	pb := strings.Split(b, ".")
	for i := 0; i < len(pa) || i < len(pb); i++ {
		switch {
		case i >= len(pa):
			return -1
		case i >= len(pb):
			return 1
		}
		if c := compareComponent(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareComponent(a, b string) int {
	numA, restA := splitLeadingDigits(a)
	numB, restB := splitLeadingDigits(b)
	switch {
	case numA == "" && numB != "":
		return -1
	case numA != "" && numB == "":
		return 1
	}
	if c := compareDigits(numA, numB); c != 0 {
		return c
	}
	return strings.Compare(restA, restB)
}

func splitLeadingDigits(s string) (string, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

// compareDigits compares decimal strings of any length without converting them.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
