package mdpaginate

import (
	"fmt"
	"strings"
)

// navFunctionNames are the functions the navigation script defines in the
// page's scripting environment. They are the only operations the host is
// permitted to invoke on the preview document.
//
//	goToPage(n) -> bool
//	nextPage() -> bool
//	prevPage() -> bool
//	getCurrentPage() -> int
//	getTotalPages() -> int

// buildPageStyleCSS generates the page-card styles for the paginated preview
// document: a gray canvas with one bordered white card per page.
func buildPageStyleCSS(layout *PageLayout) string {
	if layout == nil {
		layout = DefaultPageLayout()
	}

	return fmt.Sprintf(`
/* Paginated preview canvas */
body {
  margin: 0;
  padding: 0;
  background-color: #f0f0f0;
}
.page {
  width: %.0fmm;
  min-height: %.0fmm;
  padding: %.0fmm;
  margin: 10mm auto;
  background: white;
  box-sizing: border-box;
  position: relative;
  border: 1px solid #ccc;
  box-shadow: 0 0 10px rgba(0,0,0,0.1);
}
.current-page {
  border: 2px solid #4a90d9;
}
.page-number {
  position: absolute;
  bottom: 10mm;
  right: 10mm;
  font-size: 12px;
  color: #666;
}
@media print {
  body { background-color: white; }
  .page { border: none; box-shadow: none; margin: 0 auto; }
  .page-number { display: none; }
}
`, layout.WidthMM, layout.HeightMM, layout.MarginMM)
}

// buildNavigationScript generates the in-page navigation API. Page state
// lives in the document; the host mirrors it through the exposed bindings
// and the optional hostPageChanged callback, which is invoked fire-and-forget
// after every successful navigation.
func buildNavigationScript(totalPages int) string {
	if totalPages < 1 {
		totalPages = 1
	}

	return fmt.Sprintf(`<script>
var currentPage = 1;
var totalPages = %d;

function goToPage(pageNum) {
  var pages = document.querySelectorAll('.page');
  if (pageNum < 1 || pageNum > pages.length) {
    return false;
  }
  currentPage = pageNum;
  pages.forEach(function(page) {
    page.classList.remove('current-page');
  });
  pages[pageNum - 1].classList.add('current-page');
  pages[pageNum - 1].scrollIntoView({behavior: 'smooth'});
  if (window.hostPageChanged) {
    window.hostPageChanged({current: currentPage, total: totalPages});
  }
  return true;
}

function nextPage() {
  if (currentPage < totalPages) {
    return goToPage(currentPage + 1);
  }
  return false;
}

function prevPage() {
  if (currentPage > 1) {
    return goToPage(currentPage - 1);
  }
  return false;
}

function getCurrentPage() {
  return currentPage;
}

function getTotalPages() {
  return totalPages;
}
</script>`, totalPages)
}

// BuildPaginatedHTML assembles page fragments into a single navigable
// preview document: one card per fragment, page-number badges, the
// navigation script, and the supplied CSS in the document head. The first
// page starts as the current page.
func BuildPaginatedHTML(fragments []PageFragment, layout *PageLayout, css string) string {
	var buf strings.Builder

	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Paginated Document</title>\n")
	buf.WriteString("<style>")
	buf.WriteString(sanitizeCSS(buildPageStyleCSS(layout)))
	if css != "" {
		buf.WriteString("\n")
		buf.WriteString(sanitizeCSS(css))
	}
	buf.WriteString("</style>\n")
	buf.WriteString(buildNavigationScript(len(fragments)))
	buf.WriteString("\n</head>\n<body>\n")

	for i, frag := range fragments {
		pageClass := "page"
		if i == 0 {
			pageClass = "page current-page"
		}
		fmt.Fprintf(&buf, "<div class=\"%s\">\n%s\n<div class=\"page-number\">%d</div>\n</div>\n",
			pageClass, fragmentBody(frag.HTML), i+1)
	}

	buf.WriteString("</body>\n</html>\n")
	return buf.String()
}

// fragmentBody returns the body content of a fragment. Fragments carry a
// standalone document shell so they can display on their own; embedding one
// as a page card requires the inner content only.
func fragmentBody(fragment string) string {
	lower := strings.ToLower(fragment)
	start := strings.Index(lower, "<body")
	if start == -1 {
		return fragment
	}
	open := strings.Index(fragment[start:], ">")
	if open == -1 {
		return fragment
	}
	inner := fragment[start+open+1:]
	if end := strings.LastIndex(strings.ToLower(inner), "</body>"); end != -1 {
		inner = inner[:end]
	}
	return strings.TrimSpace(inner)
}
