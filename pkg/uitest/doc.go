// Package uitest provides testing utilities for the kontrol Bubble Tea
// components.
//
// # Testing Models
//
// [NewTestModel] accepts any model satisfying [BubbleModel], including models
// whose Update method returns the concrete type instead of [tea.Model]:
//
//	func TestDropdown(t *testing.T) {
//	    t.Parallel()
//
//	    m, err := dropdown.New(cfg)
//	    require.NoError(t, err)
//
//	    tm := uitest.NewTestModel(t, m, uitest.Compact)
//	    uitest.SendKeys(tm, "enter", "down", "enter")
//	    uitest.WaitForText(t, tm.Output(), "Descending")
//	}
//
// Models can also be driven synchronously with [Drive], which runs every
// command returned by Update and feeds the resulting messages back in.
//
// # Verifying Styles
//
//	uitest.SetupColorProfile()
//	uitest.AssertStyled(t, m.View(), "3", uitest.StyleExpectation{
//	    Bold: uitest.Ptr(true),
//	})
package uitest
