package mobiledriver_test

import (
	"context"
	"fmt"
	"time"

	"github.com/spance/mobiledriver/mobiledriver"
	"github.com/spance/mobiledriver/mobiledriver/definitions"
)

func ExampleSession() {
	ctx := context.Background()
	session := mobiledriver.NewSession(definitions.DriverConfig{
		ImplicitWait: 10 * time.Second,
		Lang:         "en",
	})
	defer session.Close(ctx)

	driver, err := session.Start(ctx, definitions.SessionParams{
		PlatformName: "Android",
		UDID:         "emulator-5554",
		AppPackage:   "com.android.settings",
		AppActivity:  ".Settings",
		RemoteHost:   "127.0.0.1",
		RemotePort:   "4723",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(driver.SessionID())
}
