package query

import (
	"github.com/Negosyo-Digital/platform-backend/internal/application/dto"
	"github.com/Negosyo-Digital/platform-backend/internal/render"
)

type ListTemplates struct{}

func NewListTemplates() *ListTemplates {
	return &ListTemplates{}
}

func (c *ListTemplates) Query() *dto.ListTemplatesResponse {
	catalog := render.All()
	resp := &dto.ListTemplatesResponse{Templates: make([]dto.TemplateDescriptorResponse, 0, len(catalog))}
	for _, d := range catalog {
		sections := make(map[string]int, len(d.Sections))
		for _, s := range d.Sections {
			sections[s.Name] = s.Variants
		}
		resp.Templates = append(resp.Templates, dto.TemplateDescriptorResponse{
			Name:        d.Name,
			Label:       d.Label,
			SuitableFor: d.SuitableFor,
			Sections:    sections,
		})
	}
	return resp
}
