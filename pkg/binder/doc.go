// Package binder fills request structs from HTTP requests.
//
// Each binder handles one source and one struct tag:
//
//   - Query():   URL query parameters, `query:"name"`
//   - Form():    urlencoded or multipart bodies, `form:"name"`
//   - Signals(): DataStar signals (JSON body, or the "datastar" query
//     parameter on GET), standard `json:"name"` tags
//
// Fields without the binder's tag are left alone, so binders compose:
//
//	type SubmitRequest struct {
//	    FullName string `form:"fullName" json:"fullName"`
//	    Field    string `query:"field"`
//	}
//
//	handler.Wrap(submit, handler.WithBinders[handler.Context, SubmitRequest](
//	    binder.Query(),
//	    binder.Signals(), // DataStar requests
//	    binder.Form(),    // plain form posts
//	))
//
// Form and Signals return ErrBinderNotApplicable when the request is not
// theirs (wrong content type, not a DataStar request); handler.Wrap skips
// such binders. Other failures wrap ErrInvalidForm, ErrInvalidJSON or
// ErrInvalidQuery.
//
// Supported field types: string, signed and unsigned integers, floats, bool
// (accepting on/off and yes/no), pointers to those, and slices for
// multi-value fields.
package binder
