package catalog

import (
	"github.com/teresa-solution/site-builder-service/internal/model"
)

func navLinks() []any {
	return []any{
		map[string]any{"name": "Home", "href": "/"},
		map[string]any{"name": "About", "href": "/about"},
		map[string]any{"name": "Services", "href": "/services"},
		map[string]any{"name": "Contact", "href": "/contact"},
	}
}

func heroData() model.ComponentData {
	return model.ComponentData{
		"title":       "Welcome to Our Site",
		"subtitle":    "Discover amazing features",
		"description": "Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
		"buttonText":  "Get Started",
		"buttonLink":  "#",
		"image":       "/placeholder.svg?height=400&width=500",
	}
}

var (
	navbarFields = []FormField{
		{Name: "title", Label: "Logo Text", Type: FieldText, Required: true},
		{Name: "links", Label: "Navigation Links", Type: FieldArray},
	}
	heroFields = []FormField{
		{Name: "title", Label: "Main Title", Type: FieldText, Required: true},
		{Name: "subtitle", Label: "Subtitle", Type: FieldText},
		{Name: "description", Label: "Description", Type: FieldTextarea},
		{Name: "buttonText", Label: "Button Text", Type: FieldText},
		{Name: "buttonLink", Label: "Button Link", Type: FieldURL},
		{Name: "image", Label: "Hero Image URL", Type: FieldURL},
	}
)

func defaultTemplates() []Template {
	return []Template{
		{
			Type: model.TypeNavbar, Variant: "default",
			Name:        "Default Navigation Bar",
			Description: "Standard horizontal navigation",
			DefaultData: model.ComponentData{"title": "Logo", "links": navLinks()},
			Fields:      navbarFields,
		},
		{
			Type: model.TypeNavbar, Variant: "centered",
			Name:        "Centered Navigation Bar",
			Description: "Centered logo with navigation below",
			DefaultData: model.ComponentData{"title": "Logo", "links": navLinks()},
			Fields:      navbarFields,
		},
		{
			Type: model.TypeNavbar, Variant: "sidebar",
			Name:        "Sidebar Navigation",
			Description: "Hamburger menu with slide-out sidebar",
			DefaultData: model.ComponentData{"title": "Logo", "links": navLinks()},
			Fields:      navbarFields,
		},
		{
			Type: model.TypeHero, Variant: "default",
			Name:        "Default Hero Section",
			Description: "Two-column hero with text and image",
			DefaultData: heroData(),
			Fields:      heroFields,
		},
		{
			Type: model.TypeHero, Variant: "centered",
			Name:        "Centered Hero Section",
			Description: "Centered content with large text",
			DefaultData: heroData(),
			Fields:      heroFields,
		},
		{
			Type: model.TypeHero, Variant: "fullscreen",
			Name:        "Fullscreen Hero Section",
			Description: "Full-screen background with overlay text",
			DefaultData: heroData(),
			Fields:      heroFields,
		},
		{
			Type: model.TypeFeatures, Variant: "default",
			Name:        "Features Section",
			Description: "Grid of feature cards",
			DefaultData: model.ComponentData{
				"title":    "Our Features",
				"subtitle": "What makes us special",
				"items": []any{
					map[string]any{"title": "Fast", "description": "Lightning fast performance", "icon": "⚡"},
					map[string]any{"title": "Secure", "description": "Bank-level security", "icon": "🔒"},
					map[string]any{"title": "Reliable", "description": "99.9% uptime guarantee", "icon": "✅"},
				},
			},
			Fields: []FormField{
				{Name: "title", Label: "Section Title", Type: FieldText, Required: true},
				{Name: "subtitle", Label: "Section Subtitle", Type: FieldText},
				{Name: "items", Label: "Feature Items", Type: FieldArray},
			},
		},
		{
			Type: model.TypeContact, Variant: "default",
			Name:        "Contact Section",
			Description: "Contact form with information sidebar",
			DefaultData: model.ComponentData{
				"title":      "Contact Us",
				"subtitle":   "Get in touch with our team",
				"formTitle":  "Send us a message",
				"infoTitle":  "Contact Information",
				"buttonText": "Send Message",
				"email":      "contact@company.com",
				"phone":      "+1 (555) 123-4567",
				"address":    "123 Main St, City, State 12345",
			},
			Fields: []FormField{
				{Name: "title", Label: "Section Title", Type: FieldText, Required: true},
				{Name: "subtitle", Label: "Section Subtitle", Type: FieldText},
				{Name: "email", Label: "Email", Type: FieldText},
				{Name: "phone", Label: "Phone", Type: FieldText},
				{Name: "address", Label: "Address", Type: FieldTextarea},
			},
		},
		{
			Type: model.TypeFooter, Variant: "default",
			Name:        "Standard Footer",
			Description: "Multi-column footer with links",
			DefaultData: model.ComponentData{
				"title":       "Company",
				"description": "Building great things.",
				"links": []any{
					map[string]any{"name": "Privacy Policy", "href": "/privacy"},
					map[string]any{"name": "Terms of Service", "href": "/terms"},
				},
			},
			Fields: []FormField{
				{Name: "title", Label: "Company Name", Type: FieldText, Required: true},
				{Name: "description", Label: "Description", Type: FieldTextarea},
				{Name: "links", Label: "Footer Links", Type: FieldArray},
			},
		},
	}
}

func defaultVariants() []Variant {
	return []Variant{
		{Type: model.TypeNavbar, Variant: "default", Name: "Default Navbar", Description: "Standard horizontal navigation bar", Preview: "Horizontal layout with logo on left, links on right"},
		{Type: model.TypeNavbar, Variant: "centered", Name: "Centered Navbar", Description: "Centered logo with navigation below", Preview: "Logo centered at top, navigation links centered below"},
		{Type: model.TypeNavbar, Variant: "sidebar", Name: "Sidebar Navbar", Description: "Hamburger menu with slide-out sidebar", Preview: "Hamburger icon that opens sidebar navigation"},
		{Type: model.TypeHero, Variant: "default", Name: "Default Hero", Description: "Two-column layout with text and image", Preview: "Text on left, image on right, side-by-side layout"},
		{Type: model.TypeHero, Variant: "centered", Name: "Centered Hero", Description: "Centered content with large text", Preview: "All content centered, large typography, image below text"},
		{Type: model.TypeHero, Variant: "fullscreen", Name: "Fullscreen Hero", Description: "Full-screen background with overlay text", Preview: "Background image covers full screen, text overlaid in center"},
		{Type: model.TypeFeatures, Variant: "default", Name: "Features Grid", Description: "Grid layout of feature cards", Preview: "3-column grid of feature cards with icons"},
		{Type: model.TypeContact, Variant: "default", Name: "Contact Form", Description: "Contact form with information sidebar", Preview: "Form on left, contact info on right"},
		{Type: model.TypeFooter, Variant: "default", Name: "Standard Footer", Description: "Multi-column footer with links", Preview: "Company info, links, and contact details in columns"},
	}
}
