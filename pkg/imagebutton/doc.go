// Package imagebutton provides a file-pick button for selecting and
// uploading images.
//
// The component validates the chosen file against an extension
// allow-list and a byte-size cap, optionally converts it to a data URL
// for local preview, and optionally hands it to a caller-supplied upload
// routine while tracking progress and error state reactively.
//
//	btn := imagebutton.New(imagebutton.Config{
//	    Label: "Upload photo",
//	    OnImageLoaded: func(img imagebutton.LoadedImage) {
//	        preview.Set(img.DataURL)
//	    },
//	    OnImageUpload: upload.NewClient("/upload").Func(),
//	    OnImageUploaded: func(resp any) { saved(resp) },
//	    OnImageUploadError: func(err error) { log.Warn("upload", "err", err) },
//	})
//	return btn.Render()
//
// Validation failures are shown inline on the button and dismissed
// automatically after Config.ErrorDismissAfter. Upload failures are
// never shown by the component; they are forwarded verbatim to
// OnImageUploadError.
package imagebutton
