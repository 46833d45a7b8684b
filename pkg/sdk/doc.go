// Package jobdex provides a Go client for the jobdex jobs search API.
//
//	client := jobdex.New("http://localhost:8080")
//
//	page, err := client.SearchJobs(ctx, jobdex.NewQuery("software engineer").
//	    Filter("organisation", "Ministry of Defence").
//	    Filters("grades", "Grade 7", "Grade 6").
//	    SalaryMin(40000).
//	    SortBy("closingDate", jobdex.SortAsc).
//	    PageSize(20))
//
//	job, err := client.GetJob(ctx, "4af0cee8-f754-4d23-878b-f7c4507e3dcd")
//
// API failures come back as *APIError carrying the HTTP status and the
// machine-readable code from the response envelope. Use errors.As, or the
// IsNotFound helper for the common case.
package jobdex
