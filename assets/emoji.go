// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: assets/emoji.go
// Summary: Emoji image lookup for emoji-aware text actors.
// Notes: Directory sources follow the twemoji naming scheme
// (lowercase hex code points joined by '-', variation selectors dropped).

package assets

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// EmojiSource resolves a grapheme cluster to an emoji image.
type EmojiSource interface {
	Emoji(cluster string) (image.Image, bool)
}

// EmojiMap is an in-memory EmojiSource keyed by grapheme cluster.
type EmojiMap map[string]image.Image

func (m EmojiMap) Emoji(cluster string) (image.Image, bool) {
	img, ok := m[cluster]
	return img, ok && img != nil
}

// DirEmojiSource serves emoji PNGs from a directory. The file index is built
// when the source is created; images are decoded on first use and cached.
type DirEmojiSource struct {
	dir   string
	files map[string]string

	mu    sync.Mutex
	cache map[string]*image.RGBA
}

// NewDirEmojiSource indexes every .png file in dir.
func NewDirEmojiSource(dir string) (*DirEmojiSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ResourceLoadError{Kind: "emoji", Path: dir, Err: err}
	}
	files := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".png") {
			continue
		}
		key := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
		files[key] = filepath.Join(dir, name)
	}
	if len(files) == 0 {
		return nil, &ResourceLoadError{Kind: "emoji", Path: dir, Err: fmt.Errorf("no png files")}
	}
	return &DirEmojiSource{dir: dir, files: files, cache: make(map[string]*image.RGBA)}, nil
}

// Len reports how many emoji files were indexed.
func (s *DirEmojiSource) Len() int { return len(s.files) }

func (s *DirEmojiSource) Emoji(cluster string) (image.Image, bool) {
	key := EmojiKey(cluster)
	path, ok := s.files[key]
	if !ok {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if img, ok := s.cache[key]; ok {
		return img, img != nil
	}
	img, err := LoadImage(path)
	if err != nil {
		log.Printf("Assets: emoji %s unusable: %v", key, err)
	}
	// Failed decodes are cached as nil so they are not retried every frame.
	s.cache[key] = img
	return img, img != nil
}

// EmojiKey converts a grapheme cluster to its file stem, e.g. "1f384" for 🎄.
func EmojiKey(cluster string) string {
	parts := make([]string, 0, 4)
	for _, r := range cluster {
		if r == 0xFE0F {
			continue
		}
		parts = append(parts, fmt.Sprintf("%x", r))
	}
	return strings.Join(parts, "-")
}
