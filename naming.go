package macground

import (
	"fmt"
	"image"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"

	"github.com/corona10/goimagehash"
	"github.com/google/uuid"
)

// Naming decides the file name of a generated image.
type Naming string

const (
	// NamingRandom appends a random 4-digit number. Names may collide and
	// a collision overwrites the previous image.
	NamingRandom Naming = "random"
	// NamingUUID appends a random UUID.
	NamingUUID Naming = "uuid"
	// NamingPHash appends the perceptual hash of the image, so identical images share a name.
	NamingPHash Naming = "phash"
)

const fileNamePrefix = "background_image_"

var fileNameRe = regexp.MustCompile(`^background_image_[0-9a-f-]+\.png$`)

func ParseNaming(s string) (Naming, error) {
	switch n := Naming(s); n {
	case NamingRandom, NamingUUID, NamingPHash:
		return n, nil
	case "":
		return NamingRandom, nil
	}
	return "", fmt.Errorf("invalid naming: %s, must be one of random, uuid or phash", s)
}

func (n Naming) fileName(r *rand.Rand, img image.Image) (string, error) {
	switch n {
	case NamingUUID:
		return fmt.Sprintf("%s%s.png", fileNamePrefix, uuid.NewString()), nil
	case NamingPHash:
		h, err := goimagehash.PerceptionHash(img)
		if err != nil {
			return "", fmt.Errorf("failed to compute perceptual hash: %w", err)
		}
		return fmt.Sprintf("%s%016x.png", fileNamePrefix, h.GetHash()), nil
	default:
		return fmt.Sprintf("%s%d.png", fileNamePrefix, 1000+r.IntN(9000)), nil
	}
}

// LatestImage returns the most recently modified generated image in dir.
func LatestImage(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read output directory %s: %w", dir, err)
	}
	var (
		latest string
		info   os.FileInfo
	)
	for _, e := range entries {
		if e.IsDir() || !fileNameRe.MatchString(e.Name()) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return "", err
		}
		if info == nil || fi.ModTime().After(info.ModTime()) {
			latest = filepath.Join(dir, e.Name())
			info = fi
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no generated image found in %s", dir)
	}
	return latest, nil
}
