package numbering

type SequenceResponse struct {
	SeqID   string `json:"seqId"`
	NextVal int64  `json:"nextVal"`
}

type ResetRequest struct {
	NextVal *int64 `json:"nextVal" binding:"required"`
}
