package config

// Presets are screen profiles. Width and Height are only seeds: GetPreset
// derives the remaining constants from them.
var Presets = map[string]*Config{
	"desktop": {
		Width: 500, Height: 500, FPS: 500, G: DefaultG, Integration: IntegrationPairwise,
		StarDensity: DefaultStarDensity, PlanetDensity: DefaultPlanetDensity, KillFactor: DefaultKillFactor,
		Kill: true, PlanetVelocity: true,
		PathSampleSize: 70, PathSampleRate: 100, PathColorFromBody: true,
		PathColor: RGB{255, 255, 255}, Background: RGB{20, 30, 40},
	},
	"android": {
		Width: 720, Height: 1440, FPS: 200, G: DefaultG, Integration: IntegrationPairwise,
		StarDensity: DefaultStarDensity, PlanetDensity: DefaultPlanetDensity, KillFactor: DefaultKillFactor,
		Kill: true, PlanetVelocity: true,
		PathSampleSize: DefaultPathSampleSize, PathSampleRate: DefaultPathSampleRate, PathColorFromBody: true,
		PathColor: RGB{255, 255, 255}, Background: RGB{20, 30, 40},
	},
	"wide": {
		Width: 1280, Height: 720, FPS: 240, G: DefaultG, Integration: IntegrationPairwise,
		StarDensity: DefaultStarDensity, PlanetDensity: DefaultPlanetDensity, KillFactor: DefaultKillFactor,
		Kill: true, PlanetVelocity: true,
		PathSampleSize: 100, PathSampleRate: 60, PathColorFromBody: true,
		PathColor: RGB{255, 255, 255}, Background: RGB{20, 30, 40},
	},
	"light": {
		Width: 500, Height: 500, FPS: 500, G: DefaultG, Integration: IntegrationPairwise,
		StarDensity: DefaultStarDensity, PlanetDensity: DefaultPlanetDensity, KillFactor: DefaultKillFactor,
		Kill: true, PlanetVelocity: true,
		PathSampleSize: 70, PathSampleRate: 100, PathColorFromBody: false,
		PathColor: RGB{10, 10, 10}, Background: RGB{210, 210, 210},
	},
}

// GetPreset returns a derived copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := p.Clone()
	cfg.Derive(cfg.Width, cfg.Height)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
