package model

import (
	"fmt"
	"strconv"
)

// Stage is the position of a lead in the sales pipeline.
type Stage int

const (
	StageNew Stage = iota
	StageDiscussion
	StageDecisionMaking
	StageContractDiscussion
)

// StageCount is the number of board columns.
const StageCount = 4

// Stages lists every pipeline stage in board order.
var Stages = [StageCount]Stage{
	StageNew,
	StageDiscussion,
	StageDecisionMaking,
	StageContractDiscussion,
}

var stageNames = [StageCount]string{"New", "Discussion", "DecisionMaking", "ContractDiscussion"}

// Column ids used by the drag surface
var columnIDs = [StageCount]string{"leads", "discussions", "decisionMaking", "contractDiscussion"}

var columnTitles = [StageCount]string{"Leads", "Discussions", "Decision Making", "Contract Discussion"}

func (s Stage) Valid() bool {
	return s >= StageNew && s <= StageContractDiscussion
}

func (s Stage) String() string {
	if !s.Valid() {
		return "Stage(" + strconv.Itoa(int(s)) + ")"
	}
	return stageNames[s]
}

// ColumnID returns the drag surface identifier of the column holding this stage.
func (s Stage) ColumnID() string {
	if !s.Valid() {
		return ""
	}
	return columnIDs[s]
}

// ColumnTitle returns the human readable column heading.
func (s Stage) ColumnTitle() string {
	if !s.Valid() {
		return ""
	}
	return columnTitles[s]
}

// StageForColumn resolves a drag surface column id.
func StageForColumn(columnID string) (Stage, bool) {
	for i, id := range columnIDs {
		if id == columnID {
			return Stage(i), true
		}
	}
	return 0, false
}

// ParseStage accepts either a stage ordinal ("2"), a stage name ("DecisionMaking")
// or a column id ("decisionMaking").
func ParseStage(v string) (Stage, error) {
	if n, err := strconv.Atoi(v); err == nil {
		s := Stage(n)
		if !s.Valid() {
			return 0, fmt.Errorf("stage %d out of range", n)
		}
		return s, nil
	}
	if s, ok := StageForColumn(v); ok {
		return s, nil
	}
	for i, name := range stageNames {
		if name == v {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", v)
}
