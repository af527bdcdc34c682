package risk

// QuestionDefinition is one entry in the pre-trip safety checklist.
// Key is a stable identifier used for translation and answer lookup;
// ordering is positional within a session's active sequence.
type QuestionDefinition struct {
	Key       string
	Weight    int
	FollowUps []QuestionDefinition
	Passenger bool
	License   bool
}

// RiskContribution returns the risk points added by an answer.
// A "yes" never adds risk. The passenger question never contributes
// points directly; its risk is expressed through the capacity penalty.
func (q QuestionDefinition) RiskContribution(answer bool) int {
	if answer || q.Passenger {
		return 0
	}
	return q.Weight
}

// The checklist questions with their risk weights.
var catalog = []QuestionDefinition{
	{Key: "areThereMorePeopleOnboard", Passenger: true},
	{Key: "haveYouReportedWhereYouAreGoing", Weight: 1},
	{Key: "doesEveryoneHaveLifeJackets", Weight: 2},
	{Key: "doYouKnowWhoToCallForHelp", Weight: 2},
	{Key: "haveYouCheckedWeatherForecast", Weight: 1},
	{Key: "doYouHaveEnoughPhoneBattery", Weight: 1},
	{Key: "doYouHaveWaterOnboard", Weight: 1},
	{Key: "isThereEnoughFuel", Weight: 2},
	{Key: "doYouKnowWhatToDoIfEngineStops", Weight: 2},
	{Key: "doYouKnowWhatToDoIfSomeoneOverboard", Weight: 3},
	{Key: "doYouKnowWhatToDoIfFireOnboard", Weight: 3},
	{Key: "doYouHaveFlashlightOnboard", Weight: 1},
	{Key: "areYouFamiliarWithArea", Weight: 2},
	{Key: "doYouHaveAccessToMaps", Weight: 2},
	{Key: "isThereAnchorOnboard", Weight: 1},
	{Key: "isBailingScoopAvailable", Weight: 1},
	{
		Key:     "doYouHaveBoatingLicense",
		Weight:  1,
		License: true,
		// Asked only when the license question is answered "no".
		FollowUps: []QuestionDefinition{
			{Key: "areYouFamiliarWithNavigationRules", Weight: 2},
			{Key: "isBoatUnder8Meters", Weight: 2},
			{Key: "isEngineUnder25HP", Weight: 2},
			{Key: "areYouUnder16YearsMax10HP", Weight: 5},
		},
	},
}

// Catalog returns the base question list for a new risk test.
// The returned slice is a copy; sessions splice follow-ups into their
// own sequence without affecting the catalog.
func Catalog() []QuestionDefinition {
	return append([]QuestionDefinition(nil), catalog...)
}
