package config

import (
	"fmt"

	"github.com/spf13/viper"

	"example.com/signup/internal/domain"
)

// seedActivity is the YAML shape of one activity in the seed file.
type seedActivity struct {
	Name            string   `mapstructure:"name"`
	Description     string   `mapstructure:"description"`
	Schedule        string   `mapstructure:"schedule"`
	MaxParticipants int      `mapstructure:"max_participants"`
	Participants    []string `mapstructure:"participants"`
}

type seedFile struct {
	Activities []seedActivity `mapstructure:"activities"`
}

// LoadSeed parses the initial activity set from a YAML file. An empty path
// yields the built-in default seed. Participant emails are lowercased on
// load so the roster invariant holds from the first request.
func LoadSeed(path string) (map[string]domain.Activity, error) {
	if path == "" {
		return DefaultSeed(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}

	var file seedFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}

	out := make(map[string]domain.Activity, len(file.Activities))
	for _, entry := range file.Activities {
		if entry.Name == "" {
			return nil, fmt.Errorf("seed file %s: activity with empty name", path)
		}
		if entry.MaxParticipants <= 0 {
			return nil, fmt.Errorf("seed file %s: activity %q needs a positive max_participants", path, entry.Name)
		}
		if _, exists := out[entry.Name]; exists {
			return nil, fmt.Errorf("seed file %s: duplicate activity %q", path, entry.Name)
		}
		participants := make([]string, 0, len(entry.Participants))
		for _, email := range entry.Participants {
			participants = append(participants, domain.NormalizeEmail(email))
		}
		out[entry.Name] = domain.Activity{
			Description:     entry.Description,
			Schedule:        entry.Schedule,
			MaxParticipants: entry.MaxParticipants,
			Participants:    participants,
		}
	}
	return out, nil
}

// DefaultSeed returns the activity set used when no seed file is configured.
func DefaultSeed() map[string]domain.Activity {
	return map[string]domain.Activity{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
	}
}
