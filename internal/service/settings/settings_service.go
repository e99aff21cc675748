package settings

import (
	"context"
	"fmt"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/pkg/store"
)

type Service struct {
	store store.Store
}

func NewSettingsService(store store.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context) (map[string]string, error) {
	list, err := s.store.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListSettings: %w", err)
	}

	out := make(map[string]string, len(list))
	for _, setting := range list {
		out[setting.Key] = setting.Value
	}
	return out, nil
}

// Save upserts every key of values. Strings are stored as they are, null as an
// empty string, anything else as its JSON text.
func (s *Service) Save(ctx context.Context, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]*domain.Setting, 0, len(keys))
	for _, k := range keys {
		v, err := encodeValue(values[k])
		if err != nil {
			return fmt.Errorf("encode setting %q: %w", k, err)
		}
		list = append(list, &domain.Setting{Key: k, Value: v})
	}

	if err := s.store.SaveSettings(ctx, list); err != nil {
		return fmt.Errorf("store.SaveSettings: %w", err)
	}
	return nil
}

func encodeValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	default:
		return sonic.ConfigStd.MarshalToString(val)
	}
}
