package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mindfulchat/mindfulchat-go/internal/domain/entities"
)

// DefaultResources is the seed set used when the catalog is empty and no
// seed file is configured.
func DefaultResources() []entities.Resource {
	return []entities.Resource{
		{
			Title:       "Mindfulness Meditation Guide",
			Description: "A beginner's guide to mindfulness meditation practices",
			URL:         "https://www.mindful.org/meditation/mindfulness-getting-started/",
			Type:        "Article",
			Category:    "Mindfulness",
			Tags:        []string{"meditation", "mindfulness", "anxiety", "stress"},
		},
		{
			Title:       "Depression Coping Strategies",
			Description: "Evidence-based strategies for managing depression symptoms",
			URL:         "https://www.helpguide.org/articles/depression/coping-with-depression.htm",
			Type:        "Guide",
			Category:    "Depression",
			Tags:        []string{"depression", "sadness", "coping", "self-care"},
		},
		{
			Title:       "Anxiety Relief Techniques",
			Description: "Quick techniques to manage anxiety in the moment",
			URL:         "https://www.anxietycanada.com/articles/new-thinking-patterns/",
			Type:        "Exercise",
			Category:    "Anxiety",
			Tags:        []string{"anxiety", "stress", "panic", "breathing"},
		},
		{
			Title:       "National Suicide Prevention Lifeline",
			Description: "24/7 support for people in distress",
			URL:         "https://988lifeline.org/",
			Type:        "Crisis Support",
			Category:    "Crisis",
			Tags:        []string{"crisis", "suicide", "emergency", "hotline"},
		},
		{
			Title:       "Crisis Text Line",
			Description: "Text HOME to 741741 for crisis support",
			URL:         "https://www.crisistextline.org/",
			Type:        "Crisis Support",
			Category:    "Crisis",
			Tags:        []string{"crisis", "texting", "emergency", "support"},
		},
		{
			Title:       "Pain Management Techniques",
			Description: "Non-medication approaches to managing physical pain",
			URL:         "https://www.healthline.com/health/pain-management-techniques",
			Type:        "Guide",
			Category:    "Pain",
			Tags:        []string{"pain", "physical", "management", "relief"},
		},
	}
}

// LoadSeedFile reads a JSON array of resources from path.
func LoadSeedFile(path string) ([]entities.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var resources []entities.Resource
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return resources, nil
}
