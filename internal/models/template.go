package models

import "time"

type TemplateActivity struct {
	Hour     string   `json:"hour"`
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

type ActivityTemplate struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Activities []TemplateActivity `json:"activities"`
	CreatedAt  time.Time          `json:"createdAt"`
}
