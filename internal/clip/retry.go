package clip

import "time"

// retry calls fn up to attempts times, sleeping delay between failures but
// not after the last one, and returns the last error.
func retry(attempts int, delay time.Duration, sleep func(time.Duration), fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			sleep(delay)
		}
	}
	return err
}
