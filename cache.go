package macground

import (
	"sync"

	"golang.org/x/image/font/opentype"
)

var globalCache = &cache{}

type cache struct {
	m sync.Map
}

func LoadFontCache(key string) (*opentype.Font, bool) {
	if v, ok := globalCache.m.Load(key); ok {
		if f, ok := v.(*opentype.Font); ok {
			return f, true
		}
	}
	return nil, false
}

func StoreFontCache(key string, f *opentype.Font) {
	if f == nil {
		return
	}
	globalCache.m.Store(key, f)
}
