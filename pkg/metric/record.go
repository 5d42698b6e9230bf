package metric

// TimingRecord is one cell of a timing matrix. Row keeps the mapping to the
// caller's size ordering, which may contain duplicates.
type TimingRecord struct {
	RunID      string  `csv:"run_id"`
	Row        int     `csv:"row"`
	Size       int     `csv:"size"`
	Repetition int     `csv:"repetition"`
	Time       float64 `csv:"time"`
}

type ScoreRecord struct {
	RunID       string  `csv:"run_id"`
	Rank        int     `csv:"rank"`
	Name        string  `csv:"name"`
	Objective   string  `csv:"objective"`
	Coefficient float64 `csv:"coefficient"`
	Residual    float64 `csv:"residual"`
	LogResidual float64 `csv:"log_residual"`
	Score       float64 `csv:"score"`
	Error       string  `csv:"error"`
}
