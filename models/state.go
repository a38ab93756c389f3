package models

import "strings"

// State là bang của Nigeria, lưu dạng UPPER_SNAKE
type State string

const (
	StateAbia       State = "ABIA"
	StateAdamawa    State = "ADAMAWA"
	StateAkwaIbom   State = "AKWA_IBOM"
	StateAnambra    State = "ANAMBRA"
	StateBauchi     State = "BAUCHI"
	StateBayelsa    State = "BAYELSA"
	StateBenue      State = "BENUE"
	StateBorno      State = "BORNO"
	StateCrossRiver State = "CROSS_RIVER"
	StateDelta      State = "DELTA"
	StateEbonyi     State = "EBONYI"
	StateEdo        State = "EDO"
	StateEkiti      State = "EKITI"
	StateEnugu      State = "ENUGU"
	StateGombe      State = "GOMBE"
	StateImo        State = "IMO"
	StateJigawa     State = "JIGAWA"
	StateKaduna     State = "KADUNA"
	StateKano       State = "KANO"
	StateKatsina    State = "KATSINA"
	StateKebbi      State = "KEBBI"
	StateKogi       State = "KOGI"
	StateKwara      State = "KWARA"
	StateLagos      State = "LAGOS"
	StateNasarawa   State = "NASARAWA"
	StateNiger      State = "NIGER"
	StateOgun       State = "OGUN"
	StateOndo       State = "ONDO"
	StateOsun       State = "OSUN"
	StateOyo        State = "OYO"
	StatePlateau    State = "PLATEAU"
	StateRivers     State = "RIVERS"
	StateSokoto     State = "SOKOTO"
	StateTaraba     State = "TARABA"
	StateYobe       State = "YOBE"
	StateZamfara    State = "ZAMFARA"
	StateFCT        State = "FCT"
)

var allStates = []State{
	StateAbia, StateAdamawa, StateAkwaIbom, StateAnambra, StateBauchi, StateBayelsa,
	StateBenue, StateBorno, StateCrossRiver, StateDelta, StateEbonyi, StateEdo,
	StateEkiti, StateEnugu, StateGombe, StateImo, StateJigawa, StateKaduna,
	StateKano, StateKatsina, StateKebbi, StateKogi, StateKwara, StateLagos,
	StateNasarawa, StateNiger, StateOgun, StateOndo, StateOsun, StateOyo,
	StatePlateau, StateRivers, StateSokoto, StateTaraba, StateYobe, StateZamfara,
	StateFCT,
}

// AllStates trả về bản sao danh sách bang
func AllStates() []State {
	out := make([]State, len(allStates))
	copy(out, allStates)
	return out
}

func (s State) Valid() bool {
	for _, st := range allStates {
		if st == s {
			return true
		}
	}
	return false
}

// DisplayName: AKWA_IBOM -> "Akwa Ibom", FCT giữ nguyên
func (s State) DisplayName() string {
	if s == StateFCT {
		return "FCT"
	}
	words := strings.Split(strings.ToLower(string(s)), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
