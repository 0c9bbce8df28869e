package hud

import "sync"

// Sprite names an image the UI layer knows how to draw.
type Sprite string

// Image is the UI element the crosshair sprite is pushed to. Rendering is
// someone else's job; Image only records what should be shown.
type Image struct {
	mu      sync.Mutex
	sprite  Sprite
	changes int
	onSet   func(Sprite)
}

func NewImage(initial Sprite) *Image {
	return &Image{sprite: initial}
}

// OnChange registers a callback fired whenever the sprite actually changes.
func (img *Image) OnChange(fn func(Sprite)) {
	img.mu.Lock()
	img.onSet = fn
	img.mu.Unlock()
}

func (img *Image) SetSprite(s Sprite) {
	img.mu.Lock()
	if img.sprite == s {
		img.mu.Unlock()
		return
	}
	img.sprite = s
	img.changes++
	fn := img.onSet
	img.mu.Unlock()

	if fn != nil {
		fn(s)
	}
}

func (img *Image) Sprite() Sprite {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.sprite
}

// Changes counts transitions, not calls.
func (img *Image) Changes() int {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.changes
}
