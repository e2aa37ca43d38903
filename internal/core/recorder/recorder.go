package recorder

import (
	"os"
	"sync"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/dep2p/go-dishub/internal/util/logger"
	"github.com/dep2p/go-dishub/internal/util/outbox"
	"github.com/dep2p/go-dishub/pkg/interfaces"
	"github.com/dep2p/go-dishub/pkg/types"
)

var log = logger.Logger("core.recorder")

// snapLen 抓包截断长度
const snapLen = 65536

type record struct {
	at   time.Time
	data []byte
}

// Recorder 把扇出流量写入 pcap 文件的参与者
type Recorder struct {
	cfg   Config
	id    string
	stats *types.ConnectionStatistics
	out   *outbox.Outbox[record]

	mu   sync.Mutex
	file *os.File
	w    *pcapgo.Writer
	done chan struct{}
	wg   sync.WaitGroup

	writeErrs *logger.Limited
}

var _ interfaces.Participant = (*Recorder)(nil)

// New 创建记录器
func New(cfg Config) *Recorder {
	return &Recorder{
		cfg:       cfg,
		id:        "recorder-" + uuid.NewString(),
		stats:     types.NewConnectionStatistics(),
		out:       outbox.New[record](cfg.Buffer),
		writeErrs: logger.NewLimited(log, 5*time.Second, 1),
	}
}

// ID 实现 interfaces.Participant
func (r *Recorder) ID() string { return r.id }

// Kind 实现 interfaces.Participant
func (r *Recorder) Kind() types.ParticipantKind { return types.KindRecorder }

// Statistics 实现 interfaces.Participant
func (r *Recorder) Statistics() *types.ConnectionStatistics { return r.stats }

// Open 创建 pcap 文件并启动写协程
func (r *Recorder) Open() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file != nil {
		return ErrAlreadyOpen
	}

	f, err := os.Create(r.cfg.File)
	if err != nil {
		return err
	}
	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(snapLen, layers.LinkTypeEthernet); err != nil {
		return multierr.Append(err, f.Close())
	}

	r.file, r.w = f, w
	r.done = make(chan struct{})
	r.wg.Add(1)
	go r.writeLoop(r.done)

	log.Info("开始记录扇出流量", "file", r.cfg.File)
	return nil
}

// SendBinary 投递到写缓冲
func (r *Recorder) SendBinary(msg []byte) {
	if !r.out.Offer(record{at: time.Now(), data: msg}) {
		r.stats.MessageDropped()
	}
}

// SendText 文本消息不记录
func (r *Recorder) SendText(string) {}

func (r *Recorder) writeLoop(done <-chan struct{}) {
	defer r.wg.Done()
	buf := gopacket.NewSerializeBuffer()
	for {
		select {
		case <-done:
			// 写完剩余缓冲
			for {
				select {
				case rec := <-r.out.C():
					r.write(buf, rec)
				default:
					return
				}
			}
		case rec := <-r.out.C():
			r.write(buf, rec)
		}
	}
}

func (r *Recorder) write(buf gopacket.SerializeBuffer, rec record) {
	frame, err := buildFrame(buf, r.cfg.Port, rec.data)
	if err != nil {
		r.stats.MessageDropped()
		r.writeErrs.Warn("封装抓包帧失败", "size", len(rec.data), "err", err)
		return
	}
	ci := gopacket.CaptureInfo{
		Timestamp:     rec.at,
		CaptureLength: len(frame),
		Length:        len(frame),
	}
	if err := r.w.WritePacket(ci, frame); err != nil {
		r.writeErrs.Warn("写入抓包文件失败", "err", err)
		return
	}
	r.stats.MessageSent(len(rec.data))
}

// Close 写完缓冲后关闭文件
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return ErrNotOpen
	}

	close(r.done)
	r.wg.Wait()

	err := multierr.Combine(r.file.Sync(), r.file.Close())
	r.file, r.w = nil, nil
	log.Info("抓包记录已关闭", "file", r.cfg.File, "frames", r.stats.Snapshot().MessagesSent)
	return err
}
