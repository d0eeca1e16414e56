package data

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/aliens/internal/component"
	"gopkg.in/yaml.v3"
)

// SpriteEntry is one picture in the sprite sheet.
type SpriteEntry struct {
	Name       string   `yaml:"name"`
	Foreground string   `yaml:"fg"`
	Background string   `yaml:"bg"`
	Bold       bool     `yaml:"bold"`
	Rows       []string `yaml:"rows"`
	Mirror     string   `yaml:"mirror"` // also register a mirrored copy under this name
}

// SpriteTable holds the game's sprites by name.
type SpriteTable struct {
	sprites map[string]*component.Sprite
}

// LoadSpriteTable loads sprites.yaml.
func LoadSpriteTable(path string) (*SpriteTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sprite sheet: %w", err)
	}
	var entries []SpriteEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse sprite sheet: %w", err)
	}
	t := &SpriteTable{sprites: make(map[string]*component.Sprite, len(entries))}
	for i := range entries {
		e := &entries[i]
		if len(e.Rows) == 0 {
			return nil, fmt.Errorf("sprite %q: no rows", e.Name)
		}
		style, err := spriteStyle(e)
		if err != nil {
			return nil, err
		}
		s := &component.Sprite{Name: e.Name, Rows: e.Rows, Style: style}
		if err := t.add(e.Name, s); err != nil {
			return nil, err
		}
		if e.Mirror != "" {
			m := component.Mirror(s)
			m.Name = e.Mirror
			if err := t.add(e.Mirror, m); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func (t *SpriteTable) add(name string, s *component.Sprite) error {
	if _, dup := t.sprites[name]; dup {
		return fmt.Errorf("sprite %q: declared twice", name)
	}
	t.sprites[name] = s
	return nil
}

func spriteStyle(e *SpriteEntry) (tcell.Style, error) {
	style := tcell.StyleDefault.Bold(e.Bold)
	if e.Foreground != "" {
		c := tcell.GetColor(e.Foreground)
		if c == tcell.ColorDefault {
			return style, fmt.Errorf("sprite %q: unknown color %q", e.Name, e.Foreground)
		}
		style = style.Foreground(c)
	}
	if e.Background != "" {
		c := tcell.GetColor(e.Background)
		if c == tcell.ColorDefault {
			return style, fmt.Errorf("sprite %q: unknown color %q", e.Name, e.Background)
		}
		style = style.Background(c)
	}
	return style, nil
}

// Get returns the sprite with the given name, or nil if none.
func (t *SpriteTable) Get(name string) *component.Sprite {
	return t.sprites[name]
}

// Frames resolves an animation made of several sprites.
func (t *SpriteTable) Frames(names ...string) ([]*component.Sprite, error) {
	out := make([]*component.Sprite, 0, len(names))
	for _, n := range names {
		s := t.sprites[n]
		if s == nil {
			return nil, fmt.Errorf("sprite %q not in sheet", n)
		}
		out = append(out, s)
	}
	return out, nil
}

// Count returns the total number of sprites loaded.
func (t *SpriteTable) Count() int {
	return len(t.sprites)
}
