package server

import "moonmash/internal/bracket"

func snapshot(state bracket.State) StatePayload {
	payload := StatePayload{
		Images:      append([]bracket.Image{}, state.Images...),
		CurrentPair: state.Resolve(state.Pair),
		Queue:       state.Resolve(state.Queue),
		Phase:       state.Phase,
		Match:       state.Match,
		Version:     state.Version,
	}
	if winner, ok := state.Winner(); ok {
		payload.FinalWinner = &winner
	}
	return payload
}

func stateMessage(kind string, state bracket.State) wsStateMessage {
	return wsStateMessage{
		Type:  kind,
		State: snapshot(state),
	}
}
