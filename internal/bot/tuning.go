package bot

// Tuning weighs the expert's discard and pegging evaluation.
type Tuning struct {
	// CribWeight scales the estimated crib value; added when dealing, subtracted otherwise.
	CribWeight float64
	// ReplyRiskWeight scales the opponent's expected reply points when pegging.
	ReplyRiskWeight float64
	// DangerCountPenalty is charged for leaving the count where a ten-card makes 15 or 31.
	DangerCountPenalty float64
}

// DefaultTuning is used by NewStrategy.
var DefaultTuning = Tuning{
	CribWeight:         1.0,
	ReplyRiskWeight:    0.8,
	DangerCountPenalty: 0.5,
}

// dangerCounts are the counts from which any ten-card scores two.
var dangerCounts = map[int]bool{5: true, 21: true}
