package arcdec

import "fmt"

// DecoderFactory はデコーダのインスタンスを生成する関数です。
type DecoderFactory func() Decoder

// Registry は既知のデコーダのカタログです。登録順は明示的なリストで保持
// され、自動判別は常に同じ順序で試行されます (init の副作用に依存しません)。
type Registry struct {
	names     []string
	factories map[string]DecoderFactory
}

// NewRegistry は既知のデコーダをあらかじめ登録したレジストリを作成します。
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]DecoderFactory),
	}

	// 登録順 = 自動判別の試行順
	builtins := []struct {
		name    string
		factory DecoderFactory
	}{
		{"microsoft/exe", func() Decoder { return NewEXEDecoder() }},
	}
	for _, b := range builtins {
		// 名前はリテラルで一意なので失敗しない
		_ = r.Register(b.name, b.factory)
	}
	return r
}

// Register はデコーダを登録します。同じ名前の二重登録はエラーになります。
func (r *Registry) Register(name string, factory DecoderFactory) error {
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDecoder, name)
	}
	r.names = append(r.names, name)
	r.factories[name] = factory
	return nil
}

// Names は登録済みのデコーダ名を登録順で返します。
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Create は名前を指定してデコーダを生成します。
func (r *Registry) Create(name string) (Decoder, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	return factory(), nil
}

// AutoDetect は登録順に IsRecognized を試し、最初に認識したデコーダと
// その名前を返します。
func (r *Registry) AutoDetect(data []byte) (string, Decoder, error) {
	for _, name := range r.names {
		decoder := r.factories[name]()
		if decoder.IsRecognized(data) {
			return name, decoder, nil
		}
	}
	return "", nil, ErrNoDecoderFound
}
