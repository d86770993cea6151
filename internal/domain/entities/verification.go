package entities

// WasteAnalysis is the result of analyzing a submitted waste image.
// The analysis is simulated; confidence is not a real model output.
type WasteAnalysis struct {
	WasteType  string `json:"waste_type"`
	Quantity   string `json:"quantity"`
	Confidence int    `json:"confidence"`
}

// CollectionVerification confirms that a collected pile matches its report
type CollectionVerification struct {
	WasteTypeMatch bool `json:"waste_type_match"`
	QuantityMatch  bool `json:"quantity_match"`
	Confidence     int  `json:"confidence"`
}
