package trajectory

// Status represents the status of a doctoral trajectory
type Status string

const (
	StatusAdmitted                    Status = "ADMITTED"
	StatusConfirmationSubmitted       Status = "CONFIRMATION_SUBMITTED"
	StatusConfirmationSucceeded       Status = "CONFIRMATION_SUCCEEDED"
	StatusConfirmationToRetake        Status = "CONFIRMATION_TO_RETAKE"
	StatusNotAuthorizedToContinue     Status = "NOT_AUTHORIZED_TO_CONTINUE"
	StatusJurySubmitted               Status = "JURY_SUBMITTED"
	StatusJuryCAApproved              Status = "JURY_CA_APPROVED"
	StatusJuryCDDApproved             Status = "JURY_CDD_APPROVED"
	StatusJuryCDDRefused              Status = "JURY_CDD_REFUSED"
	StatusJuryADREApproved            Status = "JURY_ADRE_APPROVED"
	StatusJuryADRERefused             Status = "JURY_ADRE_REFUSED"
	StatusAdmissibilitySubmitted      Status = "ADMISSIBILITY_SUBMITTED"
	StatusAdmissibilityToRestart      Status = "ADMISSIBILITY_TO_RESTART"
	StatusAdmissibilitySucceeded      Status = "ADMISSIBILITY_SUCCEEDED"
	StatusAdmissibilityFailed         Status = "ADMISSIBILITY_FAILED"
	StatusPrivateDefenceSubmitted     Status = "PRIVATE_DEFENCE_SUBMITTED"
	StatusPrivateDefenceAuthorized    Status = "PRIVATE_DEFENCE_AUTHORIZED"
	StatusPrivateDefenceToRestart     Status = "PRIVATE_DEFENCE_TO_RESTART"
	StatusPrivateDefenceSucceeded     Status = "PRIVATE_DEFENCE_SUCCEEDED"
	StatusPrivateDefenceFailed        Status = "PRIVATE_DEFENCE_FAILED"
	StatusPublicDefenceSubmitted      Status = "PUBLIC_DEFENCE_SUBMITTED"
	StatusPublicDefenceAuthorized     Status = "PUBLIC_DEFENCE_AUTHORIZED"
	StatusDefenceAndDefenceSubmitted  Status = "DEFENCE_AND_DEFENCE_SUBMITTED"
	StatusDefenceAndDefenceAuthorized Status = "DEFENCE_AND_DEFENCE_AUTHORIZED"
	StatusProclaimed                  Status = "PROCLAIMED"
	StatusAbandoned                   Status = "ABANDONED"
)

// Stage partitions the status set into the steps of the doctoral journey
type Stage string

const (
	StageAdmission      Stage = "ADMISSION"
	StageConfirmation   Stage = "CONFIRMATION"
	StageJury           Stage = "JURY"
	StageAdmissibility  Stage = "ADMISSIBILITY"
	StagePrivateDefence Stage = "PRIVATE_DEFENCE"
	StagePublicDefence  Stage = "PUBLIC_DEFENCE"
	StageProclamation   Stage = "PROCLAMATION"
	StageDropout        Stage = "DROPOUT"
)

var statusStages = map[Status]Stage{
	StatusAdmitted:                    StageAdmission,
	StatusConfirmationSubmitted:       StageConfirmation,
	StatusConfirmationSucceeded:       StageConfirmation,
	StatusConfirmationToRetake:        StageConfirmation,
	StatusNotAuthorizedToContinue:     StageDropout,
	StatusJurySubmitted:               StageJury,
	StatusJuryCAApproved:              StageJury,
	StatusJuryCDDApproved:             StageJury,
	StatusJuryCDDRefused:              StageJury,
	StatusJuryADREApproved:            StageJury,
	StatusJuryADRERefused:             StageJury,
	StatusAdmissibilitySubmitted:      StageAdmissibility,
	StatusAdmissibilityToRestart:      StageAdmissibility,
	StatusAdmissibilitySucceeded:      StageAdmissibility,
	StatusAdmissibilityFailed:         StageDropout,
	StatusPrivateDefenceSubmitted:     StagePrivateDefence,
	StatusPrivateDefenceAuthorized:    StagePrivateDefence,
	StatusPrivateDefenceToRestart:     StagePrivateDefence,
	StatusPrivateDefenceSucceeded:     StagePrivateDefence,
	StatusPrivateDefenceFailed:        StageDropout,
	StatusPublicDefenceSubmitted:      StagePublicDefence,
	StatusPublicDefenceAuthorized:     StagePublicDefence,
	StatusDefenceAndDefenceSubmitted:  StagePublicDefence,
	StatusDefenceAndDefenceAuthorized: StagePublicDefence,
	StatusProclaimed:                  StageProclamation,
	StatusAbandoned:                   StageDropout,
}

// stageRank orders the stages along the doctoral journey. DROPOUT is
// reachable from anywhere and ranks last together with PROCLAMATION so the
// stage of a trajectory never decreases along successful transitions.
var stageRank = map[Stage]int{
	StageAdmission:      0,
	StageConfirmation:   1,
	StageJury:           2,
	StageAdmissibility:  3,
	StagePrivateDefence: 4,
	StagePublicDefence:  5,
	StageProclamation:   6,
	StageDropout:        6,
}

// transitions is the (current status -> allowed next statuses) table.
// Dedicated use-cases consult it before mutating a trajectory; the table
// never allows a move to a lower-ranked stage.
var transitions = map[Status][]Status{
	StatusAdmitted:                    {StatusConfirmationSubmitted, StatusAbandoned},
	StatusConfirmationSubmitted:       {StatusConfirmationSucceeded, StatusNotAuthorizedToContinue, StatusConfirmationToRetake, StatusAbandoned},
	StatusConfirmationToRetake:        {StatusConfirmationSubmitted, StatusAbandoned},
	StatusConfirmationSucceeded:       {StatusJurySubmitted, StatusAbandoned},
	StatusJurySubmitted:               {StatusJuryCAApproved, StatusAbandoned},
	StatusJuryCAApproved:              {StatusJuryCDDApproved, StatusJuryCDDRefused, StatusAbandoned},
	StatusJuryCDDApproved:             {StatusJuryADREApproved, StatusJuryADRERefused, StatusAbandoned},
	StatusJuryCDDRefused:              {StatusJurySubmitted, StatusAbandoned},
	StatusJuryADRERefused:             {StatusJurySubmitted, StatusAbandoned},
	StatusJuryADREApproved:            {StatusAdmissibilitySubmitted, StatusAbandoned},
	StatusAdmissibilitySubmitted:      {StatusAdmissibilitySucceeded, StatusAdmissibilityFailed, StatusAdmissibilityToRestart, StatusAbandoned},
	StatusAdmissibilityToRestart:      {StatusAdmissibilitySubmitted, StatusAbandoned},
	StatusAdmissibilitySucceeded:      {StatusPrivateDefenceSubmitted, StatusDefenceAndDefenceSubmitted, StatusAbandoned},
	StatusPrivateDefenceSubmitted:     {StatusPrivateDefenceAuthorized, StatusAbandoned},
	StatusPrivateDefenceAuthorized:    {StatusPrivateDefenceSucceeded, StatusPrivateDefenceFailed, StatusPrivateDefenceToRestart, StatusAbandoned},
	StatusPrivateDefenceToRestart:     {StatusPrivateDefenceSubmitted, StatusAbandoned},
	StatusPrivateDefenceSucceeded:     {StatusPublicDefenceSubmitted, StatusAbandoned},
	StatusPublicDefenceSubmitted:      {StatusPublicDefenceAuthorized, StatusAbandoned},
	StatusPublicDefenceAuthorized:     {StatusProclaimed, StatusAbandoned},
	StatusDefenceAndDefenceSubmitted:  {StatusDefenceAndDefenceAuthorized, StatusAbandoned},
	StatusDefenceAndDefenceAuthorized: {StatusProclaimed, StatusAbandoned},
}

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	_, ok := statusStages[s]
	return ok
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Stage returns the journey step implied by the status
func (s Status) Stage() Stage {
	return statusStages[s]
}

// IsTerminal reports whether no further transition is possible
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.IsValid()
}

// IsActive reports whether the trajectory can still be worked on,
// i.e. the status is neither proclaimed nor a dropout status
func (s Status) IsActive() bool {
	return s.IsValid() && !s.IsTerminal()
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// StageRank returns the position of the stage along the journey
func (st Stage) Rank() int {
	return stageRank[st]
}
