package nutrition

// Item is one recognised component of a meal.
type Item struct {
	Name        string  `json:"name"`
	PortionSize string  `json:"portionSize"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
}

// Analysis is the nutritional estimate for a meal photo. Macros are grams.
type Analysis struct {
	FoodName      string  `json:"foodName"`
	Items         []Item  `json:"items"`
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFat      float64 `json:"totalFat"`
	Confidence    string  `json:"confidence"`
}

type AnalyzeInput struct {
	ImageBase64 string
	MIMEType    string
}
