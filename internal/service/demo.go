package service

import (
	"github.com/teresa-solution/site-builder-service/internal/model"
)

// DemoSubdomain is the subdomain of the seeded demo tenant.
const DemoSubdomain = "demo"

func demoTenant() *model.Tenant {
	contact := model.ComponentData{
		"email":   "hello@democorp.com",
		"phone":   "+1 (555) 123-4567",
		"address": "123 Innovation Drive, Tech City, TC 12345",
	}

	return &model.Tenant{
		Name:      "Demo Company",
		Subdomain: DemoSubdomain,
		IsActive:  true,
		Theme: model.Theme{
			PrimaryColor:   "#3b82f6",
			SecondaryColor: "#f8fafc",
			FontFamily:     "Inter",
		},
		Components: []model.ComponentConfig{
			{
				ID: "navbar_demo", Type: model.TypeNavbar, Variant: "default", Name: "Navigation Bar", IsActive: true, Position: 0,
				Data: model.ComponentData{
					"title": "Demo Corp",
					"links": []any{
						map[string]any{"name": "Home", "href": "/"},
						map[string]any{"name": "About", "href": "/about"},
						map[string]any{"name": "Services", "href": "/services"},
						map[string]any{"name": "Contact", "href": "/contact"},
					},
				},
			},
			{
				ID: "hero_demo", Type: model.TypeHero, Variant: "default", Name: "Hero Section", IsActive: true, Position: 1,
				Data: model.ComponentData{
					"title":       "Welcome to Demo Corp",
					"subtitle":    "Innovation at its finest",
					"description": "We provide cutting-edge solutions for modern businesses. Our team of experts is dedicated to helping you achieve your goals with the latest technology and best practices.",
					"buttonText":  "Get Started",
					"buttonLink":  "#contact",
					"image":       "/placeholder.svg?height=400&width=500",
				},
			},
			{
				ID: "features_demo", Type: model.TypeFeatures, Variant: "default", Name: "Features Section", IsActive: true, Position: 2,
				Data: model.ComponentData{
					"title":    "Why Choose Us",
					"subtitle": "We deliver excellence in every project",
					"items": []any{
						map[string]any{"title": "Fast Performance", "description": "Lightning-fast load times and optimized performance for the best user experience.", "icon": "⚡"},
						map[string]any{"title": "Secure & Reliable", "description": "Bank-level security with 99.9% uptime guarantee for your peace of mind.", "icon": "🔒"},
						map[string]any{"title": "24/7 Support", "description": "Round-the-clock customer support to help you whenever you need assistance.", "icon": "🛟"},
					},
				},
			},
			{
				ID: "contact_demo", Type: model.TypeContact, Variant: "default", Name: "Contact Section", IsActive: true, Position: 3,
				Data: contact.Clone().Merge(model.ComponentData{
					"title":      "Get In Touch",
					"subtitle":   "Ready to start your project? Contact us today",
					"formTitle":  "Send us a message",
					"infoTitle":  "Contact Information",
					"buttonText": "Send Message",
				}),
			},
			{
				ID: "footer_demo", Type: model.TypeFooter, Variant: "default", Name: "Footer", IsActive: true, Position: 4,
				Data: contact.Clone().Merge(model.ComponentData{
					"title":       "Demo Corp",
					"description": "Building the future, one innovation at a time.",
					"links": []any{
						map[string]any{"name": "Privacy Policy", "href": "/privacy"},
						map[string]any{"name": "Terms of Service", "href": "/terms"},
					},
				}),
			},
		},
		Pages: []model.PageConfig{
			{
				ID: "home_page", Name: "Home", Slug: model.HomeSlug, IsActive: true,
				Components:     []string{"navbar_demo", "hero_demo", "features_demo", "contact_demo", "footer_demo"},
				SEOTitle:       "Demo Corp - Innovation at its finest",
				SEODescription: "Welcome to Demo Corp, where we provide cutting-edge solutions for modern businesses.",
			},
			{
				ID: "about_page", Name: "About", Slug: "/about", IsActive: true,
				Components:     []string{"navbar_demo", "hero_demo", "footer_demo"},
				SEOTitle:       "About Us - Demo Corp",
				SEODescription: "Learn more about Demo Corp and our mission.",
			},
			{
				ID: "contact_page", Name: "Contact", Slug: "/contact", IsActive: true,
				Components:     []string{"navbar_demo", "contact_demo", "footer_demo"},
				SEOTitle:       "Contact Us - Demo Corp",
				SEODescription: "Get in touch with Demo Corp today.",
			},
		},
	}
}
