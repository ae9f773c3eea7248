package entity

import (
	"sort"

	"github.com/samber/lo"
)

// Whitelist сопоставляет сырые метки модели с отображаемыми названиями.
// После создания не изменяется.
type Whitelist struct {
	names map[string]string
}

// NewWhitelist копирует переданное сопоставление.
func NewWhitelist(names map[string]string) Whitelist {
	return Whitelist{names: lo.Assign(names)}
}

// DefaultWhitelist две болезни кукурузы и здоровый лист.
func DefaultWhitelist() Whitelist {
	return NewWhitelist(map[string]string{
		"maize_streak_virus":    "Maize Streak Virus (MSV)",
		"maize_lethal_necrosis": "Maize Lethal Necrosis (MLN)",
		"healthy":               "Healthy Corn",
	})
}

// Lookup возвращает отображаемое название для метки.
func (w Whitelist) Lookup(label string) (string, bool) {
	name, ok := w.names[label]
	return name, ok
}

// Labels возвращает отсортированный список сырых меток.
func (w Whitelist) Labels() []string {
	labels := lo.Keys(w.names)
	sort.Strings(labels)
	return labels
}

// Len количество записей.
func (w Whitelist) Len() int {
	return len(w.names)
}
