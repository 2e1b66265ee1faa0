package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Enum fields are stored as their canonical uppercase symbol and
// serialized as the matching display string. Input coercion folds
// spaces and hyphens so both "Site Visit" and "SITE_VISIT" resolve to
// the same member; anything outside the closed set is rejected.

type RestaurantStatus string

const (
	StatusNew       RestaurantStatus = "NEW"
	StatusContacted RestaurantStatus = "CONTACTED"
	StatusConverted RestaurantStatus = "CONVERTED"
	StatusLost      RestaurantStatus = "LOST"
)

var restaurantStatusDisplay = map[RestaurantStatus]string{
	StatusNew:       "New",
	StatusContacted: "Contacted",
	StatusConverted: "Converted",
	StatusLost:      "Lost",
}

type CallFrequency string

const (
	FrequencyDaily   CallFrequency = "DAILY"
	FrequencyWeekly  CallFrequency = "WEEKLY"
	FrequencyMonthly CallFrequency = "MONTHLY"
)

var callFrequencyDisplay = map[CallFrequency]string{
	FrequencyDaily:   "Daily",
	FrequencyWeekly:  "Weekly",
	FrequencyMonthly: "Monthly",
}

type InteractionType string

const (
	TypeCall      InteractionType = "CALL"
	TypeMeeting   InteractionType = "MEETING"
	TypeEmail     InteractionType = "EMAIL"
	TypeSiteVisit InteractionType = "SITE_VISIT"
	TypeFollowUp  InteractionType = "FOLLOW_UP"
)

var interactionTypeDisplay = map[InteractionType]string{
	TypeCall:      "Call",
	TypeMeeting:   "Meeting",
	TypeEmail:     "Email",
	TypeSiteVisit: "Site Visit",
	TypeFollowUp:  "Follow-Up",
}

type InteractionOutcome string

const (
	OutcomeSuccessful    InteractionOutcome = "SUCCESSFUL"
	OutcomeNeedsFollowUp InteractionOutcome = "NEEDS_FOLLOW_UP"
	OutcomeNoResponse    InteractionOutcome = "NO_RESPONSE"
	OutcomeCancelled     InteractionOutcome = "CANCELLED"
)

var interactionOutcomeDisplay = map[InteractionOutcome]string{
	OutcomeSuccessful:    "Successful",
	OutcomeNeedsFollowUp: "Needs Follow-Up",
	OutcomeNoResponse:    "No Response",
	OutcomeCancelled:     "Cancelled",
}

type UserRole string

const (
	RoleKAM     UserRole = "KAM"
	RoleManager UserRole = "MANAGER"
	RoleAdmin   UserRole = "ADMIN"
)

var userRoleDisplay = map[UserRole]string{
	RoleKAM:     "KAM",
	RoleManager: "Manager",
	RoleAdmin:   "Admin",
}

type PreferredContactMethod string

const (
	MethodPhone    PreferredContactMethod = "PHONE"
	MethodEmail    PreferredContactMethod = "EMAIL"
	MethodWhatsApp PreferredContactMethod = "WHATSAPP"
	MethodSMS      PreferredContactMethod = "SMS"
)

var preferredContactMethodDisplay = map[PreferredContactMethod]string{
	MethodPhone:    "Phone",
	MethodEmail:    "Email",
	MethodWhatsApp: "WhatsApp",
	MethodSMS:      "SMS",
}

var symbolReplacer = strings.NewReplacer(" ", "_", "-", "_")

// canonicalSymbol normalizes untrusted input to the stored symbol form.
func canonicalSymbol(input string) string {
	return symbolReplacer.Replace(strings.ToUpper(strings.TrimSpace(input)))
}

func ParseRestaurantStatus(input string) (RestaurantStatus, error) {
	s := RestaurantStatus(canonicalSymbol(input))
	if _, ok := restaurantStatusDisplay[s]; !ok {
		return "", fmt.Errorf("invalid status value: %q", input)
	}
	return s, nil
}

func ParseCallFrequency(input string) (CallFrequency, error) {
	f := CallFrequency(canonicalSymbol(input))
	if _, ok := callFrequencyDisplay[f]; !ok {
		return "", fmt.Errorf("invalid call_frequency value: %q", input)
	}
	return f, nil
}

func ParseInteractionType(input string) (InteractionType, error) {
	t := InteractionType(canonicalSymbol(input))
	if _, ok := interactionTypeDisplay[t]; !ok {
		return "", fmt.Errorf("invalid type value: %q", input)
	}
	return t, nil
}

func ParseInteractionOutcome(input string) (InteractionOutcome, error) {
	o := InteractionOutcome(canonicalSymbol(input))
	if _, ok := interactionOutcomeDisplay[o]; !ok {
		return "", fmt.Errorf("invalid outcome value: %q", input)
	}
	return o, nil
}

func ParseUserRole(input string) (UserRole, error) {
	r := UserRole(canonicalSymbol(input))
	if _, ok := userRoleDisplay[r]; !ok {
		return "", fmt.Errorf("invalid role value: %q", input)
	}
	return r, nil
}

func ParsePreferredContactMethod(input string) (PreferredContactMethod, error) {
	m := PreferredContactMethod(canonicalSymbol(input))
	if _, ok := preferredContactMethodDisplay[m]; !ok {
		return "", fmt.Errorf("invalid preferred_contact_method value: %q", input)
	}
	return m, nil
}

func (s RestaurantStatus) Display() string       { return restaurantStatusDisplay[s] }
func (f CallFrequency) Display() string          { return callFrequencyDisplay[f] }
func (t InteractionType) Display() string        { return interactionTypeDisplay[t] }
func (o InteractionOutcome) Display() string     { return interactionOutcomeDisplay[o] }
func (r UserRole) Display() string               { return userRoleDisplay[r] }
func (m PreferredContactMethod) Display() string { return preferredContactMethodDisplay[m] }

func (s RestaurantStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Display())
}

func (f CallFrequency) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Display())
}

func (t InteractionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Display())
}

func (o InteractionOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Display())
}

func (r UserRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Display())
}

func (m PreferredContactMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Display())
}
