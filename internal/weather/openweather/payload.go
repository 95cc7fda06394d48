package openweather

// CurrentPayload mirrors the provider's /data/2.5/weather response.
// Only the fields the gateway consumes are decoded.
type CurrentPayload struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Weather    []ConditionPayload `json:"weather"`
	Main       MainPayload        `json:"main"`
	Wind       WindPayload        `json:"wind"`
	Visibility int                `json:"visibility"`
	Timezone   int                `json:"timezone"`
}

// ForecastPayload mirrors the provider's /data/2.5/forecast response.
type ForecastPayload struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
		Coord   struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
	} `json:"city"`
	List []ForecastItemPayload `json:"list"`
}

// ForecastItemPayload is a single three-hour forecast slot.
type ForecastItemPayload struct {
	DtTxt   string             `json:"dt_txt"`
	Main    MainPayload        `json:"main"`
	Weather []ConditionPayload `json:"weather"`
	Wind    WindPayload        `json:"wind"`
	Pop     float64            `json:"pop"`
}

// GeoResult mirrors one entry of the provider's /geo/1.0/direct response.
type GeoResult struct {
	Name    string  `json:"name"`
	State   string  `json:"state"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// ConditionPayload is the provider's weather condition block.
type ConditionPayload struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// MainPayload is the provider's temperature/humidity/pressure block.
type MainPayload struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Humidity  int     `json:"humidity"`
	Pressure  int     `json:"pressure"`
}

// WindPayload is the provider's wind block.
type WindPayload struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}
