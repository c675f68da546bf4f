package service

import "strings"

// AllowList — фильтр источников сигналов. Пустые списки = разрешено всё.
// Username'ы сравниваются в lower-case и без «@».
type AllowList struct {
	ids   map[int64]struct{}
	names map[string]struct{}
}

func NewAllowList(ids []int64, names []string) *AllowList {
	a := &AllowList{
		ids:   make(map[int64]struct{}, len(ids)),
		names: make(map[string]struct{}, len(names)),
	}
	for _, id := range ids {
		a.ids[id] = struct{}{}
	}
	for _, n := range names {
		n = strings.ToLower(strings.TrimPrefix(n, "@"))
		if n != "" {
			a.names[n] = struct{}{}
		}
	}
	return a
}

// Permits: достаточно совпадения по chat id, username чата или отправителя.
func (a *AllowList) Permits(chatID int64, chatName, sender string) bool {
	if len(a.ids) == 0 && len(a.names) == 0 {
		return true
	}
	if _, ok := a.ids[chatID]; ok {
		return true
	}
	if _, ok := a.names[chatName]; chatName != "" && ok {
		return true
	}
	if _, ok := a.names[sender]; sender != "" && ok {
		return true
	}
	return false
}
