package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
)

// marketFacts сведения о рынке, которые передаются в запрос анализа
type marketFacts struct {
	Bookings       int
	Vendors        int
	LastBooked     string
	BookedRecently bool
}

func collectFacts(bookings []*domain.Booking, now time.Time, recencyDays int) marketFacts {
	cutoff := domain.Today(now).AddDate(0, 0, -recencyDays)
	vendors := make(map[string]struct{})

	var facts marketFacts
	for _, b := range bookings {
		day, err := b.Day()
		if err != nil {
			continue
		}
		facts.Bookings++
		vendors[domain.VendorKey(b.Vendor.ID)] = struct{}{}
		if b.Date > facts.LastBooked {
			facts.LastBooked = b.Date
		}
		if !day.Before(cutoff) {
			facts.BookedRecently = true
		}
	}
	facts.Vendors = len(vendors)
	return facts
}

func promoPrompt(brand, vendorName, date, marketLabel string) string {
	return fmt.Sprintf(
		"請為「%s」的攤主「%s」產生一篇熱情有活力的社群媒體宣傳短文。"+
			"- 活動日期: %s - 活動地點: %s "+
			"- 風格要求: 親切、活潑、吸引人，結尾要包含行動呼籲 (例如：快來找我們玩！)。"+
			"- 請使用繁體中文，並適度加入生動的表情符號 (emoji)。",
		brand, vendorName, date, marketLabel)
}

func analysisPrompt(brand, marketLabel string, f marketFacts) string {
	var known []string
	if f.Bookings > 0 {
		known = append(known, fmt.Sprintf("- 過去共有 %d 筆擺攤紀錄，%d 位攤主去過，最近一次是 %s。", f.Bookings, f.Vendors, f.LastBooked))
	} else {
		known = append(known, "- 我們團隊還沒有去過這個市場。")
	}
	if f.BookedRecently {
		known = append(known, "- 我們團隊近期剛去過這個市場。")
	} else {
		known = append(known, "- 我們團隊近期沒有安排過這個市場。")
	}

	return fmt.Sprintf(
		"請以專業顧問的口吻，用繁體中文簡要分析「%s」是否值得「%s」目前考慮去設攤。請根據以下已知資訊進行分析：%s 請在 2-3 句話內總結核心理由。",
		marketLabel, brand, strings.Join(known, " "))
}
