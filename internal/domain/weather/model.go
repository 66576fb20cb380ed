package weather

// Data is a point-in-time weather snapshot captured alongside a catch.
// All fields come from the weather provider as-is; absence of the whole
// record is normal and never blocks catch logging.
type Data struct {
	Temperature   float64 `json:"temperature"`
	Pressure      float64 `json:"pressure"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection float64 `json:"windDirection"`
	Conditions    string  `json:"conditions"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon"`
}
