package config

var Presets = map[string]*Config{
	"small": {
		Nc: 2, Scale: DefaultScale, Temperature: DefaultTempK,
		Dt: DefaultDt, Steps: 500, Backend: "cpu",
	},
	"standard": {
		Nc: 4, Scale: DefaultScale, Temperature: DefaultTempK,
		Dt: DefaultDt, Steps: 2000, Backend: "auto",
	},
	"melt": {
		Nc: 4, Scale: DefaultScale, Temperature: 120.0,
		Dt: DefaultDt, Steps: 5000, Backend: "auto",
	},
	"dense": {
		Nc: 4, Scale: 0.9, Temperature: DefaultTempK,
		Dt: DefaultDt, Steps: 2000, Backend: "auto",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
