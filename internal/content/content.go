// Package content holds the static bilingual marketing content served
// alongside the catalogue: FAQ entries and the list of retail partners
// carrying the products.
package content

import "nagabalm/internal/model"

// FAQEntry is a single localised question and answer pair.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// LocationGroup is a named group of retail partners.
type LocationGroup struct {
	Title     string   `json:"title"`
	Locations []string `json:"locations"`
}

type faqEntry struct {
	question model.CategoryTranslations
	answer   model.CategoryTranslations
}

var faqEntries = []faqEntry{
	{
		question: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: "What is Naga Balm made of?"},
			KM: model.CategoryTranslation{Name: "តើហ្គាបាមផលិតពីអ្វី?"},
		},
		answer: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: "Naga Balm is handcrafted in Cambodia from natural ingredients, blending traditional remedies with modern formulation."},
			KM: model.CategoryTranslation{Name: "ណាហ្គាបាមត្រូវបានផលិតដោយដៃនៅកម្ពុជា ពីគ្រឿងផ្សំធម្មជាតិ ដោយបញ្ចូលគ្នារវាងឱសថបុរាណ និងរូបមន្តទំនើប។"},
		},
	},
	{
		question: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: "How do I use the balm?"},
			KM: model.CategoryTranslation{Name: "តើខ្ញុំប្រើបាមយ៉ាងដូចម្តេច?"},
		},
		answer: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: "Apply a small amount to the affected area and massage gently until absorbed. Use up to three times daily."},
			KM: model.CategoryTranslation{Name: "លាបបរិមាណតិចតួចលើកន្លែងឈឺចាប់ ហើយម៉ាស្សាថ្នមៗរហូតជ្រាប។ ប្រើបានរហូតដល់បីដងក្នុងមួយថ្ងៃ។"},
		},
	},
	{
		question: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: "Is Naga Balm safe for sensitive skin?"},
			KM: model.CategoryTranslation{Name: "តើណាហ្គាបាមមានសុវត្ថិភាពសម្រាប់ស្បែកងាយរងគ្រោះទេ?"},
		},
		answer: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: "Our formulas use gentle natural ingredients. Test on a small patch of skin first and discontinue use if irritation occurs."},
			KM: model.CategoryTranslation{Name: "រូបមន្តរបស់យើងប្រើគ្រឿងផ្សំធម្មជាតិទន់ភ្លន់។ សាកល្បងលើស្បែកមួយកន្លែងតូចជាមុនសិន ហើយឈប់ប្រើប្រសិនបើមានការរមាស់។"},
		},
	},
	{
		question: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: "Where can I buy Naga Balm?"},
			KM: model.CategoryTranslation{Name: "តើខ្ញុំអាចទិញណាហ្គាបាមនៅឯណា?"},
		},
		answer: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: "Naga Balm is available in marts, pharmacies, fitness clubs, and specialty stores across Cambodia. See the locations page for the full list."},
			KM: model.CategoryTranslation{Name: "ណាហ្គាបាមមានលក់នៅម៉ាត ឱសថស្ថាន ក្លឹបហាត់ប្រាណ និងហាងឯកទេសទូទាំងកម្ពុជា។ សូមមើលទំព័រទីតាំងសម្រាប់បញ្ជីពេញលេញ។"},
		},
	},
}

type locationGroup struct {
	title     model.CategoryTranslations
	locations []string
}

var locationGroups = []locationGroup{
	{
		title: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: "Marts & Convenience"},
			KM: model.CategoryTranslation{Name: "ម៉ាត និងហាងទំនិញ"},
		},
		locations: []string{
			"7-Eleven",
			"Total Bonjour Mart",
			"Super Duper",
			"Circle K",
			"21° Mart",
			"Shop SATU",
			"Phnom Penh International Airport",
		},
	},
	{
		title: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: "Pharmacies"},
			KM: model.CategoryTranslation{Name: "ឱសថស្ថាន"},
		},
		locations: []string{
			"Point Santé Pharmacy",
			"Aosot Plus Pharmacy",
			"Pharmacy Chhat",
			"Pharmacy Phsar Chas",
			"Our Pharmacy BKK",
			"Medilance Pharmacy",
			"HRK Care Pharmacy",
		},
	},
	{
		title: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: "Clubs & Fitness"},
			KM: model.CategoryTranslation{Name: "ក្លឹប និងហាត់ប្រាណ"},
		},
		locations: []string{
			"Phnom Penh Sport Club",
			"Inter Badminton Club",
			"Interter Club",
			"Sen Bunthen Club",
			"The Ring Fitness Club",
			"Kingdom Fight Gym",
			"Villa Martial Art",
		},
	},
	{
		title: model.CategoryTranslations{
			EN: model.CategoryTranslation{Name: "Specialty Stores"},
			KM: model.CategoryTranslation{Name: "ហាងឯកទេស"},
		},
		locations: []string{
			"Kabas Concept Store",
			"For Someone I Like",
			"Babel Guesthouse",
			"Kun Khmer International Federation",
		},
	},
}

// FAQ returns the FAQ entries localised for the given locale.
func FAQ(locale model.Locale) []FAQEntry {
	entries := make([]FAQEntry, 0, len(faqEntries))
	for _, e := range faqEntries {
		entries = append(entries, FAQEntry{
			Question: e.question.ForLocale(locale).Name,
			Answer:   e.answer.ForLocale(locale).Name,
		})
	}
	return entries
}

// Locations returns the retail partner groups localised for the given
// locale.
func Locations(locale model.Locale) []LocationGroup {
	groups := make([]LocationGroup, 0, len(locationGroups))
	for _, g := range locationGroups {
		groups = append(groups, LocationGroup{
			Title:     g.title.ForLocale(locale).Name,
			Locations: g.locations,
		})
	}
	return groups
}
