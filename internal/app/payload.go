package app

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cribbage/internal/domain"
)

type discardPayload struct {
	Cards []string `json:"cards"`
}

type cutPayload struct {
	Index *int `json:"index"`
}

type playPayload struct {
	Card string `json:"card"`
}

type claimPayload struct {
	Points *int `json:"points"`
}

// DecodeMove turns a wire move into its domain form. Cards use the text form
// of domain.Card, e.g. "5H" or "10S". Moves without fields ignore the payload.
func DecodeMove(moveType string, payload json.RawMessage) (domain.Move, error) {
	switch domain.MoveType(moveType) {
	case domain.MoveDeal:
		return domain.DealMove{}, nil
	case domain.MoveGo:
		return domain.GoMove{}, nil
	case domain.MoveAccept:
		return domain.AcceptMove{}, nil
	case domain.MoveMuggins:
		return domain.MugginsMove{}, nil
	case domain.MoveForfeit:
		return domain.ForfeitMove{}, nil

	case domain.MoveDiscard:
		var p discardPayload
		if err := decodePayload(payload, &p); err != nil {
			return nil, err
		}
		if len(p.Cards) != domain.DiscardSize {
			return nil, fmt.Errorf("%w: discard needs %d cards, got %d", domain.ErrInvalidPayload, domain.DiscardSize, len(p.Cards))
		}
		cards, err := domain.ParseCards(p.Cards)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
		}
		return domain.DiscardMove{Cards: [2]domain.Card{cards[0], cards[1]}}, nil

	case domain.MoveCut:
		var p cutPayload
		if err := decodePayload(payload, &p); err != nil {
			return nil, err
		}
		if p.Index == nil {
			return nil, fmt.Errorf("%w: cut needs an index", domain.ErrInvalidPayload)
		}
		return domain.CutMove{Index: *p.Index}, nil

	case domain.MovePlay:
		var p playPayload
		if err := decodePayload(payload, &p); err != nil {
			return nil, err
		}
		c, err := domain.ParseCard(p.Card)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
		}
		return domain.PlayMove{Card: c}, nil

	case domain.MoveClaim:
		var p claimPayload
		if err := decodePayload(payload, &p); err != nil {
			return nil, err
		}
		if p.Points == nil {
			return nil, fmt.Errorf("%w: claim needs points", domain.ErrInvalidPayload)
		}
		return domain.ClaimMove{Points: *p.Points}, nil
	}
	return nil, fmt.Errorf("%w: unknown move type %q", domain.ErrInvalidPayload, moveType)
}

func decodePayload(payload json.RawMessage, v any) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return fmt.Errorf("%w: empty payload", domain.ErrInvalidPayload)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return nil
}

// EncodeMove is the inverse of DecodeMove, used by clients driven from Go.
func EncodeMove(m domain.Move) (string, json.RawMessage, error) {
	var body any
	switch mv := m.(type) {
	case domain.DiscardMove:
		body = discardPayload{Cards: []string{mv.Cards[0].String(), mv.Cards[1].String()}}
	case domain.CutMove:
		body = cutPayload{Index: &mv.Index}
	case domain.PlayMove:
		body = playPayload{Card: mv.Card.String()}
	case domain.ClaimMove:
		body = claimPayload{Points: &mv.Points}
	default:
		return string(m.Type()), nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", nil, err
	}
	return string(m.Type()), data, nil
}
