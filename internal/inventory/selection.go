package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atvirokodosprendimai/pantrypal/internal/domain"
)

type Kind string

const (
	KindNone         Kind = "none"
	KindCategory     Kind = "category"
	KindLocation     Kind = "location"
	KindExpiringSoon Kind = "expiringSoon"
	KindExpired      Kind = "expired"
	KindRunningLow   Kind = "runningLow"
)

// Selection is the single pantry filter a user has picked. ID is used by the
// category and location kinds only.
type Selection struct {
	Kind Kind `json:"kind"`
	ID   uint `json:"id,omitempty"`
}

func NoSelection() Selection { return Selection{Kind: KindNone} }
func SelectCategory(id uint) Selection { return Selection{Kind: KindCategory, ID: id} }
func SelectLocation(id uint) Selection { return Selection{Kind: KindLocation, ID: id} }
func SelectExpiringSoon() Selection { return Selection{Kind: KindExpiringSoon} }
func SelectExpired() Selection { return Selection{Kind: KindExpired} }
func SelectRunningLow() Selection { return Selection{Kind: KindRunningLow} }

func (s Selection) String() string {
	switch s.Kind {
	case KindCategory, KindLocation:
		return fmt.Sprintf("%s:%d", s.Kind, s.ID)
	case "":
		return string(KindNone)
	default:
		return string(s.Kind)
	}
}

func (s Selection) Validate() error {
	switch s.Kind {
	case "", KindNone, KindExpiringSoon, KindExpired, KindRunningLow:
		return nil
	case KindCategory, KindLocation:
		if s.ID == 0 {
			return domain.Invalid("filter", string(s.Kind)+" filter needs an id")
		}
		return nil
	default:
		return domain.Invalid("filter", "unknown filter kind "+strconv.Quote(string(s.Kind)))
	}
}

// ParseSelection reads the textual form used by the adapters:
// "", "none", "category:<id>", "location:<id>", "expiring", "expired", "low".
func ParseSelection(raw string) (Selection, error) {
	raw = strings.TrimSpace(raw)
	kind, arg, hasArg := strings.Cut(raw, ":")
	switch strings.ToLower(kind) {
	case "", "none", "all":
		return NoSelection(), nil
	case "category", "location":
		if !hasArg {
			return Selection{}, domain.Invalid("filter", kind+" filter needs an id")
		}
		id, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 64)
		if err != nil || id == 0 {
			return Selection{}, domain.Invalid("filter", "bad id "+strconv.Quote(arg))
		}
		if strings.EqualFold(kind, "category") {
			return SelectCategory(uint(id)), nil
		}
		return SelectLocation(uint(id)), nil
	case "expiring", "expiringsoon", "expiring-soon":
		return SelectExpiringSoon(), nil
	case "expired":
		return SelectExpired(), nil
	case "low", "runninglow", "running-low":
		return SelectRunningLow(), nil
	}
	return Selection{}, domain.Invalid("filter", "unknown filter "+strconv.Quote(raw))
}

// Options parameterise the date and quantity based selections.
type Options struct {
	Reference    time.Time
	HorizonDays  int
	LowThreshold int
}

func DefaultOptions(reference time.Time) Options {
	return Options{Reference: reference, HorizonDays: DefaultHorizonDays, LowThreshold: DefaultLowThreshold}
}

func Apply(items []domain.PantryItem, sel Selection, opts Options) ([]domain.PantryItem, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	switch sel.Kind {
	case KindCategory:
		return Filter(items, "", &sel.ID, nil), nil
	case KindLocation:
		return Filter(items, "", nil, &sel.ID), nil
	case KindExpiringSoon:
		return ClassifyExpiringSoon(items, opts.Reference, opts.HorizonDays), nil
	case KindExpired:
		return ClassifyExpired(items, opts.Reference), nil
	case KindRunningLow:
		return ClassifyRunningLow(items, opts.LowThreshold), nil
	}
	return Filter(items, "", nil, nil), nil
}
