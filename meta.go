package hlsign

import "fmt"

// assetIndex resolves coin names to the integer asset indices the wire
// format carries. Perp assets use their position in the universe; spot
// pairs are offset by 10000 per the exchange's addressing scheme.
type assetIndex struct {
	byName map[string]int
}

const spotAssetOffset = 10000

func newAssetIndex(meta *Meta, spotMeta *SpotMeta) *assetIndex {
	byName := make(map[string]int)

	if meta != nil {
		for i, asset := range meta.Universe {
			byName[asset.Name] = i
		}
	}

	if spotMeta != nil {
		for _, pair := range spotMeta.Universe {
			byName[pair.Name] = spotAssetOffset + pair.Index
		}
	}

	return &assetIndex{byName: byName}
}

func (ai *assetIndex) resolve(name string) (int, error) {
	asset, ok := ai.byName[name]
	if !ok {
		return 0, fmt.Errorf("unknown coin: %q", name)
	}
	return asset, nil
}
