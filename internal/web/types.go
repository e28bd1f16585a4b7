package web

const (
	CardWaiting    = "waiting"
	CardInPair     = "in-pair"
	CardQueued     = "queued"
	CardEliminated = "eliminated"
	CardWinner     = "winner"
)

type ImageCard struct {
	ID     string
	Src    string
	Wins   int
	Losses int
	Status string
}

type BoardView struct {
	Phase     string
	Match     int
	Images    []ImageCard
	Pair      []ImageCard
	Winner    *ImageCard
	Remaining int
}
