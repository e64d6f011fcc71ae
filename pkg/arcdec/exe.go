package arcdec

import (
	"fmt"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// 展開後のファイルを平坦な一覧に保つためのパス区切り。全角スラッシュは
// ファイルシステムの区切り文字と衝突しません。
const resourcePathSep = "／"

// リソースディレクトリはデータディレクトリの 3 番目
const resourceDirIndex = 2

// 壊れた入力でも走査が必ず停止するためのガード
const maxResourceDepth = 32

// imageDOSHeader は実行ファイル先頭の DOS ヘッダです (64 バイト固定)。
type imageDOSHeader struct {
	Magic    [2]byte
	Cblp     uint16
	Cp       uint16
	Crlc     uint16
	Cparhdr  uint16
	Minalloc uint16
	Maxalloc uint16
	SS       uint16
	SP       uint16
	Csum     uint16
	IP       uint16
	CS       uint16
	Lfarlc   uint16
	Ovno     uint16
	Res      [4]uint16
	Oemid    uint16
	Oeminfo  uint16
	Res2     [10]uint16
	Lfanew   uint32 // NT ヘッダへのファイルオフセット
}

// imageFileHeader は COFF ファイルヘッダです。
type imageFileHeader struct {
	Machine              uint16
	NumberOfSections     uint16
	Timestamp            uint32
	PointerToSymbolTable uint32
	NumberOfSymbols      uint32
	SizeOfOptionalHeader uint16
	Characteristics      uint16
}

// optionalHeaderFixed はオプショナルヘッダのうちビット幅が magic に
// 依存しない先頭部分です。
type optionalHeaderFixed struct {
	Magic                   uint16
	MajorLinkerVersion      uint8
	MinorLinkerVersion      uint8
	SizeOfCode              uint32
	SizeOfInitializedData   uint32
	SizeOfUninitializedData uint32
	AddressOfEntryPoint     uint32
	BaseOfCode              uint32
	BaseOfData              uint32
	ImageBase               uint32
	SectionAlignment        uint32
	FileAlignment           uint32
	MajorOSVersion          uint16
	MinorOSVersion          uint16
	MajorImageVersion       uint16
	MinorImageVersion       uint16
	MajorSubsystemVersion   uint16
	MinorSubsystemVersion   uint16
	Win32VersionValue       uint32
	SizeOfImage             uint32
	SizeOfHeaders           uint32
	Checksum                uint32
	Subsystem               uint16
	DllCharacteristics      uint16
}

// imageOptionalHeader はオプショナルヘッダ全体です。スタック/ヒープの
// 4 フィールドだけが magic == 0x20B (PE32+) のとき 64bit 幅になります。
type imageOptionalHeader struct {
	optionalHeaderFixed
	SizeOfStackReserve  uint64
	SizeOfStackCommit   uint64
	SizeOfHeapReserve   uint64
	SizeOfHeapCommit    uint64
	LoaderFlags         uint32
	NumberOfRvaAndSizes uint32
}

func readOptionalHeader(s *streamReader) (*imageOptionalHeader, error) {
	var header imageOptionalHeader
	if err := s.readStruct(&header.optionalHeaderFixed); err != nil {
		return nil, err
	}

	// ビット幅が分岐する唯一の箇所
	if header.Magic == 0x20B {
		var fields struct {
			SizeOfStackReserve uint64
			SizeOfStackCommit  uint64
			SizeOfHeapReserve  uint64
			SizeOfHeapCommit   uint64
		}
		if err := s.readStruct(&fields); err != nil {
			return nil, err
		}
		header.SizeOfStackReserve = fields.SizeOfStackReserve
		header.SizeOfStackCommit = fields.SizeOfStackCommit
		header.SizeOfHeapReserve = fields.SizeOfHeapReserve
		header.SizeOfHeapCommit = fields.SizeOfHeapCommit
	} else {
		var fields struct {
			SizeOfStackReserve uint32
			SizeOfStackCommit  uint32
			SizeOfHeapReserve  uint32
			SizeOfHeapCommit   uint32
		}
		if err := s.readStruct(&fields); err != nil {
			return nil, err
		}
		header.SizeOfStackReserve = uint64(fields.SizeOfStackReserve)
		header.SizeOfStackCommit = uint64(fields.SizeOfStackCommit)
		header.SizeOfHeapReserve = uint64(fields.SizeOfHeapReserve)
		header.SizeOfHeapCommit = uint64(fields.SizeOfHeapCommit)
	}

	var tail struct {
		LoaderFlags         uint32
		NumberOfRvaAndSizes uint32
	}
	if err := s.readStruct(&tail); err != nil {
		return nil, err
	}
	header.LoaderFlags = tail.LoaderFlags
	header.NumberOfRvaAndSizes = tail.NumberOfRvaAndSizes
	return &header, nil
}

// imageNTHeader は PE シグネチャ以下のヘッダ一式です。
type imageNTHeader struct {
	Signature      uint32
	FileHeader     imageFileHeader
	OptionalHeader imageOptionalHeader
}

const ntSignature = 0x00004550 // "PE\0\0"

func readNTHeader(s *streamReader) (*imageNTHeader, error) {
	var header imageNTHeader
	if err := s.readStruct(&header.Signature); err != nil {
		return nil, err
	}
	if header.Signature != ntSignature {
		return nil, fmt.Errorf("%w: invalid NT signature 0x%08x", ErrCorruptData, header.Signature)
	}
	if err := s.readStruct(&header.FileHeader); err != nil {
		return nil, err
	}
	optional, err := readOptionalHeader(s)
	if err != nil {
		return nil, err
	}
	header.OptionalHeader = *optional
	return &header, nil
}

// imageDataDir はデータディレクトリの 1 要素です。
type imageDataDir struct {
	VirtualAddress uint32
	Size           uint32
}

// imageSectionHeader はセクションテーブルの 1 要素です (40 バイト固定)。
type imageSectionHeader struct {
	Name                 [8]byte
	VirtualSize          uint32
	VirtualAddress       uint32
	SizeOfRawData        uint32
	PointerToRawData     uint32
	PointerToRelocations uint32
	PointerToLineNumbers uint32
	NumberOfRelocations  uint16
	NumberOfLineNumbers  uint16
	Characteristics      uint32
}

// imageResourceDir はリソースディレクトリのヘッダです。
type imageResourceDir struct {
	Characteristics      uint32
	Timestamp            uint32
	MajorVersion         uint16
	MinorVersion         uint16
	NumberOfNamedEntries uint16
	NumberOfIDEntries    uint16
}

// imageResourceDirEntry はディレクトリエントリの解釈済みの形です。
// 生の 8 バイトは name/id と offset の 2 つの u32 で、それぞれ最上位
// ビットがフラグになっています。
type imageResourceDirEntry struct {
	ID           uint32
	NameIsString bool
	NameOffset   uint32
	OffsetToData uint32
	DataIsDir    bool
}

func readResourceDirEntry(s *streamReader) (*imageResourceDirEntry, error) {
	var raw struct {
		Name         uint32
		OffsetToData uint32
	}
	if err := s.readStruct(&raw); err != nil {
		return nil, err
	}
	return &imageResourceDirEntry{
		ID:           raw.Name,
		NameIsString: raw.Name>>31 != 0,
		NameOffset:   raw.Name & 0x7FFFFFFF,
		OffsetToData: raw.OffsetToData & 0x7FFFFFFF,
		DataIsDir:    raw.OffsetToData>>31 != 0,
	}, nil
}

// imageResourceDataEntry は葉リソースの位置とサイズです。
type imageResourceDataEntry struct {
	OffsetToData uint32 // RVA
	Size         uint32
	CodePage     uint32
	Reserved     uint32
}

// rvaHelper は RVA からファイルオフセットへの変換を行います。
// セクションの仮想アドレス範囲は重ならない前提で、最初に一致した
// セクションを使います。
type rvaHelper struct {
	fileAlignment    uint32
	sectionAlignment uint32
	sections         []imageSectionHeader
}

func (h *rvaHelper) toOffset(rva uint32) (uint32, error) {
	section, err := h.sectionFor(rva)
	if err != nil {
		return 0, err
	}
	return rva +
		h.adjustFileAlignment(section.PointerToRawData) -
		h.adjustSectionAlignment(section.VirtualAddress), nil
}

func (h *rvaHelper) sectionFor(rva uint32) (*imageSectionHeader, error) {
	for i := range h.sections {
		section := &h.sections[i]
		if rva >= section.VirtualAddress && rva < section.VirtualAddress+section.VirtualSize {
			return section, nil
		}
	}
	return nil, fmt.Errorf("%w: no section contains RVA 0x%08x", ErrCorruptData, rva)
}

func (h *rvaHelper) adjustFileAlignment(offset uint32) uint32 {
	if h.fileAlignment < 0x200 {
		return offset
	}
	return offset / 0x200 * 0x200
}

func (h *rvaHelper) adjustSectionAlignment(offset uint32) uint32 {
	alignment := h.sectionAlignment
	if alignment < 0x1000 {
		alignment = h.fileAlignment
	}
	if alignment != 0 && offset%alignment != 0 {
		return alignment * (offset / alignment)
	}
	return offset
}

// 数値 ID のリソース種別に対する慣用名。表にない ID は 10 進表記になります。
var resourceTypeNames = map[uint32]string{
	1:  "CURSOR",
	2:  "BITMAP",
	3:  "ICON",
	4:  "MENU",
	5:  "DIALOG",
	6:  "STRING",
	7:  "FONT_DIRECTORY",
	8:  "FONT",
	9:  "ACCELERATOR",
	10: "RC_DATA",
	11: "MESSAGE_TABLE",
	16: "VERSION",
	17: "DLG_INCLUDE",
	19: "PLUG_AND_PLAY",
	20: "VXD",
	21: "ANIMATED_CURSOR",
	22: "ANIMATED_ICON",
	23: "HTML",
	24: "MANIFEST",
}

// resourceCrawler はリソースディレクトリ木を深さ優先で歩き、葉ごとに
// Entry を 1 つ発行します。エントリ単位の失敗はログに残して兄弟の走査を
// 続けます。
type resourceCrawler struct {
	logger     Logger
	rva        *rvaHelper
	baseOffset int64
	stream     *streamReader
	meta       *ArchiveMeta
	visited    map[int64]struct{}
}

func crawlResources(logger Logger, rva *rvaHelper, baseOffset int64, stream *streamReader, meta *ArchiveMeta) error {
	crawler := &resourceCrawler{
		logger:     logger,
		rva:        rva,
		baseOffset: baseOffset,
		stream:     stream,
		meta:       meta,
		visited:    make(map[int64]struct{}),
	}
	return crawler.processDir(0, "", 0)
}

func (c *resourceCrawler) processDir(offset int64, path string, depth int) error {
	// 壊れた入力の自己参照や異常な深さでも必ず停止させる
	if depth > maxResourceDepth {
		return fmt.Errorf("%w: resource directory nesting deeper than %d", ErrCorruptData, maxResourceDepth)
	}
	if _, seen := c.visited[offset]; seen {
		return fmt.Errorf("%w: resource directory loop at offset 0x%08x", ErrCorruptData, offset)
	}
	c.visited[offset] = struct{}{}

	if err := c.stream.seek(c.baseOffset + offset); err != nil {
		return err
	}
	var dir imageResourceDir
	if err := c.stream.readStruct(&dir); err != nil {
		return err
	}

	entryCount := int(dir.NumberOfNamedEntries) + int(dir.NumberOfIDEntries)
	for i := 0; i < entryCount; i++ {
		entry, err := readResourceDirEntry(c.stream)
		if err != nil {
			return err
		}

		// エントリ配下を覗く間は位置を保存し、どの経路でも必ず戻す
		saved := c.stream.tell()
		err = c.processEntryTree(entry, path, depth)
		c.stream.pos = saved
		if err != nil {
			c.logger.Printf("0x%08x のリソースエントリを読み込めません (%v)\n",
				c.baseOffset+int64(entry.OffsetToData), err)
		}
	}
	return nil
}

func (c *resourceCrawler) processEntryTree(entry *imageResourceDirEntry, path string, depth int) error {
	name, err := c.readEntryName(entry)
	if err != nil {
		return err
	}
	entryPath := name
	if path != "" {
		entryPath = path + resourcePathSep + name
	}

	if entry.DataIsDir {
		return c.processDir(int64(entry.OffsetToData), entryPath, depth+1)
	}
	return c.processEntry(int64(entry.OffsetToData), entryPath)
}

func (c *resourceCrawler) processEntry(offset int64, path string) error {
	if err := c.stream.seek(c.baseOffset + offset); err != nil {
		return err
	}
	var dataEntry imageResourceDataEntry
	if err := c.stream.readStruct(&dataEntry); err != nil {
		return err
	}

	fileOffset, err := c.rva.toOffset(dataEntry.OffsetToData)
	if err != nil {
		return err
	}
	c.meta.Entries = append(c.meta.Entries, &Entry{
		Path:   path,
		Offset: uint64(fileOffset),
		Size:   uint64(dataEntry.Size),
	})
	return nil
}

func (c *resourceCrawler) readEntryName(entry *imageResourceDirEntry) (string, error) {
	if entry.NameIsString {
		if err := c.stream.seek(c.baseOffset + int64(entry.NameOffset)); err != nil {
			return "", err
		}
		var length uint16
		if err := c.stream.readStruct(&length); err != nil {
			return "", err
		}
		raw, err := c.stream.readBytes(int(length) * 2)
		if err != nil {
			return "", err
		}
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		name, _, err := transform.Bytes(decoder, raw)
		if err != nil {
			return "", err
		}
		return string(name), nil
	}

	if name, known := resourceTypeNames[entry.ID]; known {
		return name, nil
	}
	return strconv.FormatUint(uint64(entry.ID), 10), nil
}

// EXEDecoder は Windows 実行ファイル (PE) に埋め込まれたリソースを
// アーカイブとして取り出すデコーダです。
type EXEDecoder struct{}

// NewEXEDecoder は新しい EXEDecoder を作成します。
func NewEXEDecoder() *EXEDecoder {
	return &EXEDecoder{}
}

const dosHeaderSize = 64

// IsRecognized は DOS ヘッダの "MZ" マジックを確認します。
func (d *EXEDecoder) IsRecognized(data []byte) bool {
	return len(data) >= dosHeaderSize && data[0] == 'M' && data[1] == 'Z'
}

// ReadMeta は PE ヘッダ一式を解析し、リソース木の葉をエントリ一覧として
// 返します。ペイロードはここでは読みません。
func (d *EXEDecoder) ReadMeta(logger Logger, data []byte) (*ArchiveMeta, error) {
	if logger == nil {
		logger = discardLogger{}
	}
	stream := newStreamReader(data)

	var dosHeader imageDOSHeader
	if err := stream.readStruct(&dosHeader); err != nil {
		return nil, fmt.Errorf("%w: DOS header: %v", ErrCorruptData, err)
	}
	if dosHeader.Magic != [2]byte{'M', 'Z'} {
		return nil, fmt.Errorf("%w: bad DOS magic", ErrCorruptData)
	}

	if err := stream.seek(int64(dosHeader.Lfanew)); err != nil {
		return nil, fmt.Errorf("%w: e_lfanew: %v", ErrCorruptData, err)
	}
	ntHeader, err := readNTHeader(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: NT header: %v", ErrCorruptData, err)
	}

	dataDirCount := int(ntHeader.OptionalHeader.NumberOfRvaAndSizes)
	dataDirs := make([]imageDataDir, 0, dataDirCount)
	for i := 0; i < dataDirCount; i++ {
		var dir imageDataDir
		if err := stream.readStruct(&dir); err != nil {
			return nil, fmt.Errorf("%w: data directory %d: %v", ErrCorruptData, i, err)
		}
		dataDirs = append(dataDirs, dir)
	}

	sections := make([]imageSectionHeader, 0, ntHeader.FileHeader.NumberOfSections)
	for i := 0; i < int(ntHeader.FileHeader.NumberOfSections); i++ {
		var section imageSectionHeader
		if err := stream.readStruct(&section); err != nil {
			return nil, fmt.Errorf("%w: section header %d: %v", ErrCorruptData, i, err)
		}
		sections = append(sections, section)
	}

	if dataDirCount <= resourceDirIndex {
		return nil, fmt.Errorf("%w: no resource data directory", ErrCorruptData)
	}
	resourceDir := dataDirs[resourceDirIndex]
	if resourceDir.VirtualAddress == 0 {
		return nil, fmt.Errorf("%w: empty resource data directory", ErrCorruptData)
	}

	rva := &rvaHelper{
		fileAlignment:    ntHeader.OptionalHeader.FileAlignment,
		sectionAlignment: ntHeader.OptionalHeader.SectionAlignment,
		sections:         sections,
	}
	baseOffset, err := rva.toOffset(resourceDir.VirtualAddress)
	if err != nil {
		return nil, err
	}

	meta := &ArchiveMeta{}
	if err := crawlResources(logger, rva, int64(baseOffset), stream, meta); err != nil {
		return nil, fmt.Errorf("%w: resource directory: %v", ErrCorruptData, err)
	}
	return meta, nil
}

// ReadFile はエントリの指す範囲を取り出し、内容から拡張子を推測した
// 名前付きファイルを返します。
func (d *EXEDecoder) ReadFile(data []byte, meta *ArchiveMeta, entry *Entry) (*File, error) {
	end := entry.Offset + entry.Size
	if end < entry.Offset || end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: %s [0x%x, 0x%x) (size 0x%x)",
			ErrOutOfRange, entry.Path, entry.Offset, end, len(data))
	}

	file := &File{
		Name: entry.Path,
		Data: append([]byte(nil), data[entry.Offset:end]...),
	}
	file.GuessExtension()
	return file, nil
}
