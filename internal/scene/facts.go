package scene

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultFacts are shown one per idle kill when no fact file is configured.
var DefaultFacts = []string{
	"INTEL: Most asteroids in the main belt are rubble piles, loose gravel held together by their own weak gravity.",
	"INTEL: The combined mass of every main-belt asteroid is about 3% of the Moon's.",
	"INTEL: Ceres holds roughly a quarter of the belt's mass on its own and is classed as a dwarf planet.",
	"INTEL: The average gap between belt asteroids is around a million kilometres. Spacecraft fly through without steering.",
	"INTEL: Some asteroids have moons. Ida's moon Dactyl was the first one spotted, in 1993.",
	"INTEL: Trojan asteroids share Jupiter's orbit, clustered 60 degrees ahead of and behind the planet.",
	"INTEL: Sunlight alone can nudge a small asteroid's orbit over millions of years. It's called the Yarkovsky effect.",
	"INTEL: Bennu's surface turned out so loose that the sampling arm sank into it like a ball pit.",
}

// LoadFacts reads one fact per non-empty line from path.
func LoadFacts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open facts: %w", err)
	}
	defer f.Close()

	var facts []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			facts = append(facts, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read facts: %w", err)
	}
	return facts, nil
}
