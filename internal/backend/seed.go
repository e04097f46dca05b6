package backend

import (
	"context"
	"time"

	"github.com/Anasnah/Adkari-fin4/internal/domain"
)

// Initial content shipped with the app. Local collections fall back to
// these when their slot has never been written; cmd/seed pushes the same
// records to a fresh remote project.

func seedDhikrs() []domain.Dhikr {
	return []domain.Dhikr{
		{ID: "1", Text: "سبحان الله وبحمده", Count: 33, Category: "morning", Order: 1, Benefit: "غفرت ذنوبه وإن كانت مثل زبد البحر"},
		{ID: "2", Text: "أستغفر الله العظيم", Count: 100, Category: "evening", Order: 2},
		{ID: "3", Text: "الله أكبر", Count: 33, Category: "prayer", Order: 3},
		{ID: "4", Text: "لا إله إلا الله وحده لا شريك له", Count: 10, Category: "morning", Order: 4},
	}
}

func seedHadiths() []domain.Hadith {
	return []domain.Hadith{
		{ID: "1", Text: "إنما الأعمال بالنيات", Source: "البخاري", Category: "النية"},
		{ID: "2", Text: "الدين النصيحة", Source: "مسلم", Category: "عام"},
	}
}

func seedNews() []domain.NewsItem {
	return []domain.NewsItem{
		{ID: "1", Title: "تحديث جديد", Content: "تم إضافة الوضع الليلي وميزة الأذكار التلقائية", Date: time.Now().Format("2006-01-02")},
	}
}

// SeedContent upserts the initial content into whichever store backs the
// service. It is idempotent: records are keyed by ID.
func SeedContent(ctx context.Context, s *Service) error {
	for _, d := range seedDhikrs() {
		if err := s.Dhikrs.Upsert(ctx, d); err != nil {
			return err
		}
	}
	for _, h := range seedHadiths() {
		if err := s.Hadiths.Upsert(ctx, h); err != nil {
			return err
		}
	}
	for _, n := range seedNews() {
		if err := s.News.Upsert(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
