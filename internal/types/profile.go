package types

// Strength is the four-level label attached to a profile signal.
type Strength string

const (
	StrengthExcellent        Strength = "Excellent"
	StrengthGood             Strength = "Good"
	StrengthAverage          Strength = "Average"
	StrengthNeedsImprovement Strength = "Needs Improvement"
)

const (
	SourceRepository = "repository"
	SourceNetwork    = "network"
)

// ProfileSignal is the scored view of one external profile source.
type ProfileSignal struct {
	Source    string             `json:"source"`
	SubScore  float64            `json:"sub_score"`
	Strength  Strength           `json:"strength_label"`
	Breakdown map[string]float64 `json:"breakdown"`
	// Fallback marks a synthetic signal produced because the source was unavailable.
	Fallback bool `json:"fallback"`
}

// ProfileSignals carries the signal of each source. A nil entry means the
// user never provided an identifier for that source.
type ProfileSignals struct {
	Repository *ProfileSignal `json:"repository,omitempty"`
	Network    *ProfileSignal `json:"network,omitempty"`
}

// RepositoryScore returns the repository sub-score, or 0 when the source was not provided.
func (s ProfileSignals) RepositoryScore() float64 {
	if s.Repository == nil {
		return 0
	}
	return s.Repository.SubScore
}

// NetworkScore returns the network sub-score, or 0 when the source was not provided.
func (s ProfileSignals) NetworkScore() float64 {
	if s.Network == nil {
		return 0
	}
	return s.Network.SubScore
}

type Project struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stars"`
	URL         string `json:"url,omitempty"`
}

// RepositoryData is the raw account data fetched from a repository host.
type RepositoryData struct {
	Username      string         `json:"username"`
	Name          string         `json:"name,omitempty"`
	Bio           string         `json:"bio,omitempty"`
	PublicRepos   int            `json:"public_repos"`
	Followers     int            `json:"followers"`
	TotalStars    int            `json:"total_stars"`
	Languages     map[string]int `json:"languages"`
	Contributions int            `json:"contributions"`
	TopProjects   []Project      `json:"top_projects"`
}

// NetworkData is the raw account data of a professional network profile.
type NetworkData struct {
	ProfileURL      string         `json:"profile_url"`
	Connections     int            `json:"connections"`
	Endorsements    map[string]int `json:"endorsements"`
	Skills          []string       `json:"skills"`
	Recommendations int            `json:"recommendations"`
}

// ProfileReport bundles the scored signals with whatever raw data was fetched.
type ProfileReport struct {
	Signals    ProfileSignals  `json:"signals"`
	Repository *RepositoryData `json:"repository_data,omitempty"`
	Network    *NetworkData    `json:"network_data,omitempty"`
}
