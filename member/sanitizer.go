package member

import (
	"sync"

	"github.com/goliatone/go-masker"
	"github.com/goliatone/go-tickets/pkg/types"
)

// SanitizerConfig controls the masker used for benefits sanitization.
type SanitizerConfig struct {
	Masker *masker.Masker
}

var defaultMaskerOnce sync.Once

// DefaultMasker returns a masker configured with the default denylist. The
// benefits map is opaque to the portal but commonly carries voucher and promo
// codes that must not leak into rendered views or exports.
func DefaultMasker() *masker.Masker {
	defaultMaskerOnce.Do(func() {
		if masker.Default == nil {
			return
		}
		registerDefaultMaskFields(masker.Default)
	})
	return masker.Default
}

// SanitizeBenefits masks sensitive values in the member's benefits map. The
// member is returned with a detached, masked copy; the stored row is never
// touched.
func SanitizeBenefits(mask *masker.Masker, m types.Member) types.Member {
	if len(m.Benefits) == 0 {
		return m
	}
	if mask == nil {
		mask = DefaultMasker()
	}
	if mask == nil {
		m.Benefits = map[string]any{}
		return m
	}

	cloned := cloneMap(m.Benefits)
	masked, err := mask.Mask(cloned)
	if err != nil {
		m.Benefits = map[string]any{}
		return m
	}

	switch masked := masked.(type) {
	case map[string]any:
		m.Benefits = masked
	default:
		m.Benefits = map[string]any{}
	}
	return m
}

func registerDefaultMaskFields(mask *masker.Masker) {
	if mask == nil {
		return
	}
	mask.RegisterMaskField("voucher_code", "filled4")
	mask.RegisterMaskField("promo_code", "filled4")
	mask.RegisterMaskField("code", "filled4")
}
