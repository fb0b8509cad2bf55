package effect

import (
	"github.com/vovakirdan/blockpath/internal/config"
	"github.com/vovakirdan/blockpath/internal/scene"
)

// Asset names one scene asset the effect resolves at startup.
type Asset struct {
	Kind scene.AssetKind
	Name string
}

// RequiredAssets lists every asset Start resolves, in resolution order.
func RequiredAssets(cfg config.Config) []Asset {
	sc := cfg.Scene
	assets := []Asset{
		{scene.KindObject, sc.ShadowAnchor},
		{scene.KindObject, sc.Segmentation},
		{scene.KindObject, sc.ShadowButton},
		{scene.KindMaterial, sc.ShadowMaterial},
		{scene.KindTexture, sc.ShadowTextureOn},
		{scene.KindTexture, sc.ShadowTextureOff},
	}
	for _, name := range cfg.Picker.Textures {
		assets = append(assets, Asset{scene.KindTexture, name})
	}
	for i := 0; i < sc.Blocks; i++ {
		assets = append(assets, Asset{scene.KindObject, scene.BlockName(i)})
	}
	return append(assets, Asset{scene.KindObject, scene.HomeBlockName})
}

// BuildGraph creates a scene graph holding the given assets.
func BuildGraph(assets []Asset) *scene.Graph {
	g := scene.NewGraph()
	for _, a := range assets {
		switch a.Kind {
		case scene.KindObject:
			g.AddObject(a.Name)
		case scene.KindMaterial:
			g.AddMaterial(a.Name)
		case scene.KindTexture:
			g.AddTexture(a.Name)
		}
	}
	return g
}

// NewHostGraph builds the complete scene the terminal host presents.
func NewHostGraph(cfg config.Config) *scene.Graph {
	return BuildGraph(RequiredAssets(cfg))
}
