package crawler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/blogdex/models"
)

var (
	reHangul       = regexp.MustCompile(`[가-힣]`)
	reLatinRun     = regexp.MustCompile(`[a-zA-Z]{5,}`)
	contentImgHint = []string{"blogfiles", "postfiles", "pstatic.net"}
)

// analyzeImageSeo audits the alt-text and filename hygiene of the post's
// content images. Only images hosted on the blog's media CDNs count;
// profile thumbnails and chrome are skipped.
func analyzeImageSeo(doc *goquery.Document) models.ImageSeoReport {
	report := models.ImageSeoReport{Recommendations: []string{}}

	doc.FindMatcher(imgSel).Each(func(_ int, img *goquery.Selection) {
		src := attrAny(img, "src", "data-lazy-src", "data-src")
		if src == "" || strings.Contains(src, "blogpfthumb") {
			return
		}
		if !containsAny(src, contentImgHint) {
			return
		}

		report.TotalImages++
		if alt, _ := img.Attr("alt"); len([]rune(strings.TrimSpace(alt))) > 2 {
			report.WithAlt++
		} else {
			report.WithoutAlt++
		}

		if !report.HasDescriptiveFilename {
			if reHangul.MatchString(src) {
				report.HasDescriptiveFilename = true
			} else if slash := strings.LastIndex(src, "/"); slash >= 0 &&
				reLatinRun.MatchString(src[slash+1:]) {
				report.HasDescriptiveFilename = true
			}
		}
	})

	switch {
	case report.TotalImages == 0:
		report.AltQuality = models.AltQualityNoImages
	case report.WithAlt == report.TotalImages:
		report.AltQuality = models.AltQualityExcellent
	case float64(report.WithAlt) >= float64(report.TotalImages)*0.7:
		report.AltQuality = models.AltQualityGood
	case float64(report.WithAlt) >= float64(report.TotalImages)*0.3:
		report.AltQuality = models.AltQualityAverage
	default:
		report.AltQuality = models.AltQualityPoor
	}

	if report.WithoutAlt > 0 {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("이미지 %d개에 ALT 태그 추가 권장", report.WithoutAlt))
	}
	switch {
	case report.TotalImages == 0:
		report.Recommendations = append(report.Recommendations,
			"본문에 이미지를 추가하면 SEO에 도움됩니다")
	case report.TotalImages < 3:
		report.Recommendations = append(report.Recommendations,
			"이미지를 3개 이상 추가하면 좋습니다")
	}
	if report.TotalImages > 0 &&
		(report.AltQuality == models.AltQualityPoor || report.AltQuality == models.AltQualityAverage) {
		report.Recommendations = append(report.Recommendations,
			"이미지 ALT 태그에 키워드를 포함하세요")
	}

	return report
}
