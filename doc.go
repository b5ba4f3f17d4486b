// Package mdpaginate renders a markdown document as a sequence of discrete,
// independently navigable pages for display in an embedded browser preview.
//
// # Quick Start
//
// Create a service, render markdown, and navigate the result:
//
//	svc := mdpaginate.New()
//
//	result, err := svc.Render(ctx, mdpaginate.Input{
//	    Markdown: "# Page 1\n\n<!-- PAGE_BREAK -->\n\n# Page 2",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(svc.Paginator().TotalPages()) // 2
//
// The result contains the full paginated HTML document (result.HTML) and the
// ordered page fragments (result.Fragments); the service's Paginator tracks
// the current position across renders.
//
// # Page Break Syntaxes
//
// Four equivalent markers are recognized in markdown input:
//
//	<!-- PAGE_BREAK -->
//	<div style="page-break-before: always;"></div>
//	{pagebreak}  or  {page-break}
//	---          (on its own line, blank-surrounded)
//
// A lone "---" adjacent to other content is not a break; it is treated as a
// horizontal rule or heading underline.
//
// # Render Pipeline
//
// The pipeline follows these stages:
//
//  1. Markdown preprocessing (line normalization, break-marker canonicalization)
//  2. Markdown to HTML conversion via Goldmark (GFM, syntax highlighting)
//  3. Splitting into page fragments at styled-div break markers
//  4. Heading-numbering CSS generation and injection
//  5. Assembly into a paginated document with an in-page navigation script
//
// # Page Estimation
//
// EstimatePages gives an approximate page count from content features before
// conversion has run, for UI feedback while typing:
//
//	pages := mdpaginate.EstimatePages(markdown, mdpaginate.DefaultLinesPerPage)
//
// # Embedded Preview
//
// Preview displays the paginated document in a headless Chrome page (go-rod)
// and binds goToPage/nextPage/prevPage/getCurrentPage/getTotalPages into the
// page's scripting environment:
//
//	pv := mdpaginate.NewPreview(svc.Paginator())
//	defer pv.Close()
//	err := pv.Show(ctx, result.HTML)
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := mdpaginate.New(
//	    mdpaginate.WithLinesPerPage(50),
//	    mdpaginate.WithDebounce(100*time.Millisecond),
//	    mdpaginate.WithLogger(slog.Default()),
//	)
//
// Per-render options are passed via Input:
//
//	result, err := svc.Render(ctx, mdpaginate.Input{
//	    Markdown:  content,
//	    Numbering: &mdpaginate.NumberingConfig{Technical: true, StartLevel: 2},
//	    Layout:    mdpaginate.DefaultPageLayout(),
//	    CSS:       "body { font-size: 14px; }",
//	})
package mdpaginate
