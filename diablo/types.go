package diablo

// ActsIndex is the response of the act index endpoint.
type ActsIndex struct {
	Acts []Act `json:"acts"`
}

// Act is a Diablo III act with its quests.
type Act struct {
	Slug   string  `json:"slug"`
	Number int     `json:"number"`
	Name   string  `json:"name"`
	Quests []Quest `json:"quests"`
}

// Quest is a quest belonging to an act.
type Quest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
